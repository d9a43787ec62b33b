package mocks

import (
	"context"
	"time"

	"github.com/phrazzld/task-manager-api/internal/service/auth"
)

// MockTokenSigner implements auth.TokenSigner for testing
type MockTokenSigner struct {
	GenerateTokenFn func(ctx context.Context, username string) (string, time.Time, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Default values used when functions aren't explicitly defined
	Token       string
	ExpiresAt   time.Time
	Err         error
	Claims      *auth.Claims
	ValidateErr error
}

var _ auth.TokenSigner = (*MockTokenSigner)(nil)

// GenerateToken implements auth.TokenSigner
func (m *MockTokenSigner) GenerateToken(ctx context.Context, username string) (string, time.Time, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, username)
	}
	return m.Token, m.ExpiresAt, m.Err
}

// ValidateToken implements auth.TokenSigner
func (m *MockTokenSigner) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}
