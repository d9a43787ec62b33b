package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockTaskStore is a mock of store.TaskStore for use with testify/mock.
type TestifyMockTaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*TestifyMockTaskStore)(nil)

// Create is a mock implementation of store.TaskStore.Create
func (m *TestifyMockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

// GetByID is a mock implementation of store.TaskStore.GetByID
func (m *TestifyMockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

// GetByIDForUpdate is a mock implementation of store.TaskStore.GetByIDForUpdate
func (m *TestifyMockTaskStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

// Update is a mock implementation of store.TaskStore.Update
func (m *TestifyMockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

// List is a mock implementation of store.TaskStore.List
func (m *TestifyMockTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	args := m.Called(ctx)
	tasks, _ := args.Get(0).([]domain.Task)
	return tasks, args.Error(1)
}

// WithTx is a mock implementation of store.TaskStore.WithTx.
// It returns the receiver so expectations carry over into transactions.
func (m *TestifyMockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
