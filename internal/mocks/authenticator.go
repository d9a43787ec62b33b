package mocks

import (
	"context"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/service/auth"
)

// MockAuthenticator implements auth.Authenticator for testing
type MockAuthenticator struct {
	AuthenticateFn func(ctx context.Context, creds auth.Credentials) (*domain.User, error)

	// CallCount tracks how many times Authenticate was called
	CallCount int
}

var _ auth.Authenticator = (*MockAuthenticator)(nil)

// Authenticate implements auth.Authenticator.
// Without AuthenticateFn every attempt is rejected.
func (m *MockAuthenticator) Authenticate(ctx context.Context, creds auth.Credentials) (*domain.User, error) {
	m.CallCount++
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, creds)
	}
	return nil, auth.ErrInvalidCredentials
}
