package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/task-manager-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task. The store assigns the identifier and writes it
	// back into task.ID; every other field is persisted as given.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its identifier.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// GetByIDForUpdate retrieves a task and locks its row until the surrounding
	// transaction ends. It is only meaningful on a store returned by WithTx.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Task, error)

	// Update writes title, description, status, and priority of an existing task.
	// The identifier and creation timestamp are never modified.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// List returns every task ordered by identifier.
	List(ctx context.Context) ([]domain.Task, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
