package auth

import (
	"context"
	"time"
)

// MinSecretLength is the minimum length in bytes of an HMAC signing secret.
const MinSecretLength = 32

// TokenSigner issues and verifies signed bearer tokens for authenticated users.
type TokenSigner interface {
	// GenerateToken creates a signed token whose subject is username.
	// Every call yields a distinct token, even within the same second.
	// Returns the token and the instant it expires.
	GenerateToken(ctx context.Context, username string) (string, time.Time, error)

	// ValidateToken checks the signature and time claims of tokenString.
	// Returns ErrInvalidToken, ErrExpiredToken, or ErrTokenNotYetValid on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified content of a token.
type Claims struct {
	// Username is the subject the token was issued for.
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
	// ID is the unique token identifier (jti).
	ID string
}
