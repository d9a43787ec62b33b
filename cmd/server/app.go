package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/task-manager-api/internal/config"
	"github.com/phrazzld/task-manager-api/internal/platform/postgres"
	platformredis "github.com/phrazzld/task-manager-api/internal/platform/redis"
	"github.com/phrazzld/task-manager-api/internal/service"
	"github.com/phrazzld/task-manager-api/internal/service/auth"
	"github.com/phrazzld/task-manager-api/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	redis  *goredis.Client

	signer      auth.TokenSigner
	taskService service.TaskService
	userService service.UserService
}

// newApplication creates a new application instance with all dependencies initialized.
// The database connection must already be established.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := ensureSigningSecret(&cfg.Auth, logger); err != nil {
		return nil, err
	}

	var cache service.TaskCache
	if cfg.Cache.Enabled() {
		rdb, err := platformredis.NewClient(ctx, cfg.Cache)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize task cache: %w", err)
		}
		app.redis = rdb
		cache = platformredis.NewTaskCache(rdb, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
		logger.Info("Task cache enabled", "redis_addr", cfg.Cache.RedisAddr, "ttl_seconds", cfg.Cache.TTLSeconds)
	}

	taskStore := postgres.NewPostgresTaskStore(db, logger)
	userStore := postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost, logger)

	if err := app.initServices(taskStore, userStore, cache); err != nil {
		app.cleanup()
		return nil, err
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// initServices builds the signer, authenticator, and services on top of the given stores.
func (app *application) initServices(tasks store.TaskStore, users store.UserStore, cache service.TaskCache) error {
	var err error

	app.signer, err = auth.NewTokenSigner(app.config.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize token signer: %w", err)
	}
	app.logger.Info("Token signer initialized",
		"token_lifetime_minutes", app.config.Auth.TokenLifetimeMinutes)

	authenticator, err := auth.NewAuthenticator(users, auth.NewBcryptVerifier(), app.logger)
	if err != nil {
		return fmt.Errorf("failed to create authenticator: %w", err)
	}

	app.taskService, err = service.NewTaskService(tasks, app.db, cache, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create task service: %w", err)
	}

	app.userService, err = service.NewUserService(users, app.db, authenticator, app.signer, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create user service: %w", err)
	}

	return nil
}

// ensureSigningSecret fills an empty JWT secret with random bytes.
// Tokens signed with a generated secret stop validating after a restart.
func ensureSigningSecret(cfg *config.AuthConfig, logger *slog.Logger) error {
	if cfg.JWTSecret != "" {
		return nil
	}

	secret := make([]byte, auth.MinSecretLength)
	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("failed to generate signing secret: %w", err)
	}
	cfg.JWTSecret = hex.EncodeToString(secret)

	logger.Warn("No JWT secret configured; generated a random one. Issued tokens will not survive a restart",
		"env_var", config.EnvPrefix+"_AUTH_JWT_SECRET")
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("Error closing redis connection", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
