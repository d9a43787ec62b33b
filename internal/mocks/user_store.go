package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// MockUserStore implements store.UserStore for testing.
// Without function overrides it keeps users in memory keyed by username and
// stores the plaintext password as the "hash".
type MockUserStore struct {
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	ListFn          func(ctx context.Context) ([]domain.User, error)
	DeleteFn        func(ctx context.Context, id uuid.UUID) error

	// WithTxCalls counts WithTx invocations.
	WithTxCalls int

	mu    sync.Mutex
	users map[string]*domain.User
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{users: make(map[string]*domain.User)}
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create implements store.UserStore.Create
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.users == nil {
		m.users = make(map[string]*domain.User)
	}
	if _, exists := m.users[user.Username]; exists {
		return store.ErrUsernameExists
	}
	if user.Password != "" {
		user.HashedPassword = user.Password
		user.Password = ""
	}
	stored := *user
	m.users[user.Username] = &stored
	return nil
}

// GetByUsername implements store.UserStore.GetByUsername
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	found := *user
	return &found, nil
}

// List implements store.UserStore.List
func (m *MockUserStore) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

// Delete implements store.UserStore.Delete
func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for name, u := range m.users {
		if u.ID == id {
			delete(m.users, name)
			return nil
		}
	}
	return store.ErrUserNotFound
}

// WithTx implements store.UserStore.WithTx by returning the same mock.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	m.mu.Lock()
	m.WithTxCalls++
	m.mu.Unlock()
	return m
}
