package auth

import (
	"fmt"

	"github.com/phrazzld/task-manager-api/internal/config"
)

// TestAuthConfig returns auth settings suitable for tests in other packages.
func TestAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes: 60,
		BcryptCost:           4,
		ProtectTasks:         true,
	}
}

// MustNewTestTokenSigner creates a TokenSigner from TestAuthConfig and panics on failure.
func MustNewTestTokenSigner() TokenSigner {
	signer, err := NewTokenSigner(TestAuthConfig())
	if err != nil {
		// ALLOW-PANIC
		panic(fmt.Sprintf("failed to create test token signer: %v", err))
	}
	return signer
}
