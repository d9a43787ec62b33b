package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// Credentials is a username and plaintext password presented at login.
type Credentials struct {
	Username string
	Password string
}

// Result is the outcome of a login attempt. Token and ExpiresAt are set only
// when Authenticated is true.
type Result struct {
	Authenticated bool
	Token         string
	ExpiresAt     time.Time
}

// Authenticator is the identity manager that decides whether credentials
// belong to a known user.
type Authenticator interface {
	// Authenticate returns the matching user, or ErrInvalidCredentials when the
	// username is unknown or the password does not match.
	Authenticate(ctx context.Context, creds Credentials) (*domain.User, error)
}

// UserLookup is the read side of the user store needed for authentication.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// storeAuthenticator checks credentials against stored bcrypt hashes.
type storeAuthenticator struct {
	users    UserLookup
	verifier PasswordVerifier
	logger   *slog.Logger
}

// Ensure storeAuthenticator implements Authenticator interface
var _ Authenticator = (*storeAuthenticator)(nil)

// NewAuthenticator creates an Authenticator backed by users and verifier.
func NewAuthenticator(users UserLookup, verifier PasswordVerifier, logger *slog.Logger) (Authenticator, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if verifier == nil {
		return nil, domain.NewValidationError("verifier", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &storeAuthenticator{
		users:    users,
		verifier: verifier,
		logger:   logger.With(slog.String("component", "authenticator")),
	}, nil
}

// Authenticate implements Authenticator.
func (a *storeAuthenticator) Authenticate(ctx context.Context, creds Credentials) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)

	// Usernames are stored trimmed.
	creds.Username = strings.TrimSpace(creds.Username)
	user, err := a.users.GetByUsername(ctx, creds.Username)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("login rejected: unknown username", slog.String("username", creds.Username))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := a.verifier.Compare(user.HashedPassword, creds.Password); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			log.Debug("login rejected: password mismatch", slog.String("username", creds.Username))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	return user, nil
}
