package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
// Without function overrides it keeps tasks in memory and assigns
// sequential identifiers starting at 1.
type MockTaskStore struct {
	CreateFn           func(ctx context.Context, task *domain.Task) error
	GetByIDFn          func(ctx context.Context, id int64) (*domain.Task, error)
	GetByIDForUpdateFn func(ctx context.Context, id int64) (*domain.Task, error)
	UpdateFn           func(ctx context.Context, task *domain.Task) error
	ListFn             func(ctx context.Context) ([]domain.Task, error)

	// Call counters for verifying cache behavior.
	GetByIDCalls int
	ListCalls    int
	WithTxCalls  int

	mu     sync.Mutex
	nextID int64
	tasks  map[int64]domain.Task
}

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{tasks: make(map[int64]domain.Task)}
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements store.TaskStore.Create
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	if err := task.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tasks == nil {
		m.tasks = make(map[int64]domain.Task)
	}
	m.nextID++
	task.ID = m.nextID
	m.tasks[task.ID] = *task
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	m.mu.Lock()
	m.GetByIDCalls++
	m.mu.Unlock()

	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.get(id)
}

// GetByIDForUpdate implements store.TaskStore.GetByIDForUpdate
func (m *MockTaskStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return m.get(id)
}

func (m *MockTaskStore) get(id int64) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return &task, nil
}

// Update implements store.TaskStore.Update
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	if err := task.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.tasks[task.ID]
	if !ok {
		return store.ErrTaskNotFound
	}
	existing.ApplyUpdate(*task)
	m.tasks[task.ID] = existing
	return nil
}

// List implements store.TaskStore.List
func (m *MockTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	m.mu.Lock()
	m.ListCalls++
	m.mu.Unlock()

	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	tasks := make([]domain.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

// WithTx implements store.TaskStore.WithTx by returning the same mock.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	m.mu.Lock()
	m.WithTxCalls++
	m.mu.Unlock()
	return m
}
