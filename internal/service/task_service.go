package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/store"
	"golang.org/x/sync/singleflight"
)

// TaskCache is an optional read cache for tasks.
// Get methods return nil with a nil error on a miss.
//
// Invalidate advances the cache generation. Readers capture Generation before
// querying the store and pass it to SetTask/SetList, which report false and
// store nothing if an invalidation happened in between.
type TaskCache interface {
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	GetList(ctx context.Context) ([]domain.Task, error)
	Generation(ctx context.Context) (int64, error)
	SetTask(ctx context.Context, gen int64, task *domain.Task) (bool, error)
	SetList(ctx context.Context, gen int64, list []domain.Task) (bool, error)
	Invalidate(ctx context.Context, ids ...int64) error
}

// TaskService provides task operations
type TaskService interface {
	// CreateTask stores a new task. The identifier and creation timestamp are
	// assigned here; values supplied by the caller are ignored.
	CreateTask(ctx context.Context, task domain.Task) (*domain.Task, error)

	// GetTask retrieves a task by its identifier.
	// Returns store.ErrTaskNotFound if it does not exist.
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// UpdateTask replaces title, description, status, and priority of task id.
	// Returns store.ErrTaskNotFound if it does not exist.
	UpdateTask(ctx context.Context, id int64, task domain.Task) (*domain.Task, error)

	// GetAllTasks returns every task in identifier order.
	GetAllTasks(ctx context.Context) ([]domain.Task, error)
}

const taskListFlightKey = "tasks:list"

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks  store.TaskStore
	db     *sql.DB
	cache  TaskCache
	flight singleflight.Group
	now    func() time.Time
	logger *slog.Logger
}

// NewTaskService creates a new TaskService.
// cache may be nil, in which case every read goes to the store.
func NewTaskService(tasks store.TaskStore, db *sql.DB, cache TaskCache, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, missingDependency("task", "tasks")
	}
	if db == nil {
		return nil, missingDependency("task", "db")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  tasks,
		db:     db,
		cache:  cache,
		now:    time.Now,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task.ID = 0
	task.CreationDateTime = s.now().UTC()

	if err := s.tasks.Create(ctx, &task); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		log.Error("failed to create task", slog.String("error", err.Error()))
		return nil, NewServiceError("task", "create_task", "failed to save task", err)
	}

	s.invalidate(ctx, log)

	log.Info("task created", slog.Int64("task_id", task.ID))
	return &task, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if s.cache != nil {
		cached, err := s.cache.GetTask(ctx, id)
		if err != nil {
			log.Warn("task cache read failed", slog.String("error", err.Error()), slog.Int64("task_id", id))
		} else if cached != nil {
			return cached, nil
		}
	}

	gen, fill := s.cacheGeneration(ctx, log)

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) {
			log.Error("failed to get task", slog.String("error", err.Error()), slog.Int64("task_id", id))
		}
		return nil, NewServiceError("task", "get_task", "failed to retrieve task", err)
	}

	if fill {
		if stored, err := s.cache.SetTask(ctx, gen, task); err != nil {
			log.Warn("task cache write failed", slog.String("error", err.Error()), slog.Int64("task_id", id))
		} else if !stored {
			log.Debug("skipped caching task changed during read", slog.Int64("task_id", id))
		}
	}

	return task, nil
}

// UpdateTask implements TaskService.UpdateTask
// The row is locked for the duration of the read-modify-write.
func (s *taskServiceImpl) UpdateTask(ctx context.Context, id int64, task domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.tasks.WithTx(tx)

		existing, err := txStore.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		existing.ApplyUpdate(task)
		if err := txStore.Update(ctx, existing); err != nil {
			return err
		}

		updated = existing
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found for update", slog.Int64("task_id", id))
		} else {
			log.Error("failed to update task", slog.String("error", err.Error()), slog.Int64("task_id", id))
		}
		return nil, NewServiceError("task", "update_task", "failed to update task", err)
	}

	s.invalidate(ctx, log, id)

	log.Info("task updated", slog.Int64("task_id", id))
	return updated, nil
}

// GetAllTasks implements TaskService.GetAllTasks
// Concurrent cache misses share one store query.
func (s *taskServiceImpl) GetAllTasks(ctx context.Context) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if s.cache != nil {
		cached, err := s.cache.GetList(ctx)
		if err != nil {
			log.Warn("task list cache read failed", slog.String("error", err.Error()))
		} else if cached != nil {
			return cached, nil
		}
	}

	v, err, shared := s.flight.Do(taskListFlightKey, func() (interface{}, error) {
		// Detached so one caller's cancellation does not fail the others.
		flightCtx := context.WithoutCancel(ctx)

		gen, fill := s.cacheGeneration(flightCtx, log)

		tasks, err := s.tasks.List(flightCtx)
		if err != nil {
			return nil, err
		}

		if fill {
			if stored, err := s.cache.SetList(flightCtx, gen, tasks); err != nil {
				log.Warn("task list cache write failed", slog.String("error", err.Error()))
			} else if !stored {
				log.Debug("skipped caching task list changed during read")
			}
		}
		return tasks, nil
	})
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, NewServiceError("task", "get_all_tasks", "failed to list tasks", err)
	}

	list := v.([]domain.Task)
	if shared {
		list = append(make([]domain.Task, 0, len(list)), list...)
	}
	if list == nil {
		list = []domain.Task{}
	}
	return list, nil
}

// cacheGeneration returns the generation a store read should be cached under.
// fill is false when there is no cache or the generation is unavailable.
func (s *taskServiceImpl) cacheGeneration(ctx context.Context, log *slog.Logger) (gen int64, fill bool) {
	if s.cache == nil {
		return 0, false
	}
	gen, err := s.cache.Generation(ctx)
	if err != nil {
		log.Warn("task cache generation read failed", slog.String("error", err.Error()))
		return 0, false
	}
	return gen, true
}

func (s *taskServiceImpl) invalidate(ctx context.Context, log *slog.Logger, ids ...int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ids...); err != nil {
		log.Warn("task cache invalidation failed", slog.String("error", err.Error()))
	}
}
