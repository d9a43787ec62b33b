package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/service/auth"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// UserService provides the user directory operations
type UserService interface {
	// AddUser creates a user with a hashed password. An empty role becomes
	// domain.DefaultRole. Returns store.ErrUsernameExists for a taken username.
	AddUser(ctx context.Context, username, password, role string) (*domain.User, error)

	// RemoveUser deletes the user with the given username.
	// Returns store.ErrUserNotFound if it does not exist.
	RemoveUser(ctx context.Context, username string) error

	// GetUser retrieves a user by username.
	// Returns store.ErrUserNotFound if it does not exist.
	GetUser(ctx context.Context, username string) (*domain.User, error)

	// GetAllUsers returns every user ordered by username.
	GetAllUsers(ctx context.Context) ([]domain.User, error)

	// Verify checks credentials and issues a token on success.
	// Rejected credentials yield a Result with Authenticated false and a nil error;
	// a non-nil error always means an infrastructure failure.
	Verify(ctx context.Context, creds auth.Credentials) (auth.Result, error)
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	users         store.UserStore
	db            *sql.DB
	authenticator auth.Authenticator
	signer        auth.TokenSigner
	logger        *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	users store.UserStore,
	db *sql.DB,
	authenticator auth.Authenticator,
	signer auth.TokenSigner,
	logger *slog.Logger,
) (UserService, error) {
	switch {
	case users == nil:
		return nil, missingDependency("user", "users")
	case db == nil:
		return nil, missingDependency("user", "db")
	case authenticator == nil:
		return nil, missingDependency("user", "authenticator")
	case signer == nil:
		return nil, missingDependency("user", "signer")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		users:         users,
		db:            db,
		authenticator: authenticator,
		signer:        signer,
		logger:        logger.With(slog.String("component", "user_service")),
	}, nil
}

// AddUser implements UserService.AddUser
func (s *userServiceImpl) AddUser(ctx context.Context, username, password, role string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(username, password, role)
	if err != nil {
		log.Debug("rejected new user", slog.String("error", err.Error()))
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.users.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			log.Debug("attempted to create user with existing username", slog.String("username", user.Username))
		} else {
			log.Error("failed to save user", slog.String("error", err.Error()), slog.String("username", user.Username))
		}
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		return nil, NewServiceError("user", "add_user", "failed to create user", err)
	}

	log.Info("user created", slog.String("user_id", user.ID.String()), slog.String("username", user.Username))
	return user, nil
}

// RemoveUser implements UserService.RemoveUser
func (s *userServiceImpl) RemoveUser(ctx context.Context, username string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.users.WithTx(tx)

		user, err := txStore.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		return txStore.Delete(ctx, user.ID)
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("user not found for removal", slog.String("username", username))
		} else {
			log.Error("failed to remove user", slog.String("error", err.Error()), slog.String("username", username))
		}
		return NewServiceError("user", "remove_user", "failed to remove user", err)
	}

	log.Info("user removed", slog.String("username", username))
	return nil
}

// GetUser implements UserService.GetUser
func (s *userServiceImpl) GetUser(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve user",
				slog.String("error", err.Error()),
				slog.String("username", username))
		}
		return nil, NewServiceError("user", "get_user", "failed to retrieve user", err)
	}
	return user, nil
}

// GetAllUsers implements UserService.GetAllUsers
func (s *userServiceImpl) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list users", slog.String("error", err.Error()))
		return nil, NewServiceError("user", "get_all_users", "failed to list users", err)
	}
	return users, nil
}

// Verify implements UserService.Verify
func (s *userServiceImpl) Verify(ctx context.Context, creds auth.Credentials) (auth.Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.authenticator.Authenticate(ctx, creds)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Info("login rejected", slog.String("username", creds.Username))
			return auth.Result{}, nil
		}
		log.Error("authentication failed", slog.String("error", err.Error()))
		return auth.Result{}, NewServiceError("user", "verify", "failed to authenticate", err)
	}

	token, expiresAt, err := s.signer.GenerateToken(ctx, user.Username)
	if err != nil {
		log.Error("failed to issue token", slog.String("error", err.Error()), slog.String("username", user.Username))
		return auth.Result{}, NewServiceError("user", "verify", "failed to issue token", err)
	}

	log.Info("login succeeded", slog.String("username", user.Username))
	return auth.Result{Authenticated: true, Token: token, ExpiresAt: expiresAt}, nil
}
