package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/task-manager-api/internal/domain"
)

// MockTaskCache is an in-memory stand-in for the Redis task cache, including
// its generation check: fills read before an invalidation are dropped.
// Setting Err makes every method fail with it.
type MockTaskCache struct {
	Err error

	// StaleFills counts SetTask/SetList calls rejected by the generation check.
	StaleFills int

	mu              sync.Mutex
	generation      int64
	tasks           map[int64]domain.Task
	list            []domain.Task
	listCached      bool
	InvalidatedIDs  []int64
	InvalidateCalls int
}

// NewMockTaskCache creates an empty cache
func NewMockTaskCache() *MockTaskCache {
	return &MockTaskCache{tasks: make(map[int64]domain.Task)}
}

// GetTask returns the cached task or nil on a miss.
func (m *MockTaskCache) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return nil, nil
	}
	return &task, nil
}

// Generation returns the number of invalidations so far.
func (m *MockTaskCache) Generation(ctx context.Context) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generation, nil
}

// SetTask stores a task unless the cache was invalidated after gen.
func (m *MockTaskCache) SetTask(ctx context.Context, gen int64, task *domain.Task) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		m.StaleFills++
		return false, nil
	}
	if m.tasks == nil {
		m.tasks = make(map[int64]domain.Task)
	}
	m.tasks[task.ID] = *task
	return true, nil
}

// GetList returns the cached list or nil on a miss.
func (m *MockTaskCache) GetList(ctx context.Context) ([]domain.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.listCached {
		return nil, nil
	}
	return append([]domain.Task{}, m.list...), nil
}

// SetList stores the list unless the cache was invalidated after gen.
func (m *MockTaskCache) SetList(ctx context.Context, gen int64, list []domain.Task) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		m.StaleFills++
		return false, nil
	}
	m.list = append([]domain.Task{}, list...)
	m.listCached = true
	return true, nil
}

// Invalidate drops the list and the given task entries.
func (m *MockTaskCache) Invalidate(ctx context.Context, ids ...int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InvalidateCalls++
	m.InvalidatedIDs = append(m.InvalidatedIDs, ids...)
	if m.Err != nil {
		return m.Err
	}
	m.generation++
	m.list = nil
	m.listCached = false
	for _, id := range ids {
		delete(m.tasks, id)
	}
	return nil
}

// ListCached reports whether a list is currently cached.
func (m *MockTaskCache) ListCached() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCached
}
