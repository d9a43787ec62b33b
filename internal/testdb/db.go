package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/task-manager-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds connecting to and migrating the test database.
const TestTimeout = 30 * time.Second

var (
	sharedDB     *sql.DB
	sharedDBErr  error
	sharedDBOnce sync.Once
)

// GetTestDBWithT returns a connection to the test database with all
// migrations applied. The connection is opened once per test binary.
// Skips the test when no database is configured, unless running in CI.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		if IsCI() {
			t.Fatalf("%s must be set for integration tests in CI", EnvDatabaseURL)
		}
		t.Skipf("%s not set, skipping integration test", EnvDatabaseURL)
	}

	sharedDBOnce.Do(func() {
		sharedDB, sharedDBErr = openAndMigrate(dbURL)
	})
	require.NoError(t, sharedDBErr, "test database %s unavailable", maskDatabaseURL(dbURL))

	return sharedDB
}

func openAndMigrate(dbURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open test database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping test database: %w", err)
	}
	if err := postgres.Migrate(ctx, db, "up", nil); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// WithTx runs fn within a transaction that is always rolled back, so tests
// can modify the database without affecting each other.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		// sql.ErrTxDone is expected if fn already ended the transaction
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
