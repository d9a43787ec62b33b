package postgres_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/platform/postgres"
	"github.com/phrazzld/task-manager-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var userRowColumns = []string{"id", "username", "hashed_password", "role", "created_at"}

func TestPostgresUserStoreCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password before insert", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresUserStore(db, bcrypt.MinCost, nil)

		user, err := domain.NewUser("alice", "secret1", "")
		require.NoError(t, err)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WithArgs(user.ID, "alice", sqlmock.AnyArg(), domain.DefaultRole, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Create(ctx, user))
		assert.Empty(t, user.Password)
		assert.NotEqual(t, "secret1", user.HashedPassword)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("secret1")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresUserStore(db, bcrypt.MinCost, nil)

		user, err := domain.NewUser("alice", "secret1", "")
		require.NoError(t, err)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnError(newPgError("23505"))

		err = s.Create(ctx, user)
		assert.ErrorIs(t, err, store.ErrUsernameExists)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("invalid user", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresUserStore(db, bcrypt.MinCost, nil)

		err := s.Create(ctx, &domain.User{ID: uuid.New(), Password: "x"})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.ErrorIs(t, err, domain.ErrEmptyUsername)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNewPostgresUserStoreCostBounds(t *testing.T) {
	db, mock := newMockDB(t)
	s := postgres.NewPostgresUserStore(db, 100, nil)

	user, err := domain.NewUser("bob", "pw", "")
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.Create(context.Background(), user))

	cost, err := bcrypt.Cost([]byte(user.HashedPassword))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestPostgresUserStoreGetByUsername(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresUserStore(db, bcrypt.MinCost, nil)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE username = $1")).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(id.String(), "alice", "$2a$04$hash", "Admin", created))

		user, err := s.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "Admin", user.Role)
		assert.Equal(t, "$2a$04$hash", user.HashedPassword)
		assert.Empty(t, user.Password)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresUserStore(db, bcrypt.MinCost, nil)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE username = $1")).
			WillReturnError(sql.ErrNoRows)

		_, err := s.GetByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestPostgresUserStoreList(t *testing.T) {
	db, mock := newMockDB(t)
	s := postgres.NewPostgresUserStore(db, bcrypt.MinCost, nil)
	created := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY username")).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(uuid.NewString(), "alice", "h1", "User", created).
			AddRow(uuid.NewString(), "bob", "h2", "User", created))

	users, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
}

func TestPostgresUserStoreDelete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("deleted", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresUserStore(db, bcrypt.MinCost, nil)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Delete(ctx, id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresUserStore(db, bcrypt.MinCost, nil)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Delete(ctx, id), store.ErrUserNotFound)
	})
}
