package api

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/service"
	"github.com/phrazzld/task-manager-api/internal/service/auth"
	"github.com/stretchr/testify/mock"
)

type mockTaskService struct {
	mock.Mock
}

var _ service.TaskService = (*mockTaskService)(nil)

func (m *mockTaskService) CreateTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *mockTaskService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *mockTaskService) UpdateTask(ctx context.Context, id int64, task domain.Task) (*domain.Task, error) {
	args := m.Called(ctx, id, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *mockTaskService) GetAllTasks(ctx context.Context) ([]domain.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

type mockUserService struct {
	mock.Mock
}

var _ service.UserService = (*mockUserService)(nil)

func (m *mockUserService) AddUser(ctx context.Context, username, password, role string) (*domain.User, error) {
	args := m.Called(ctx, username, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserService) RemoveUser(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

func (m *mockUserService) GetUser(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserService) Verify(ctx context.Context, creds auth.Credentials) (auth.Result, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(auth.Result), args.Error(1)
}

// newTestRouter mounts the handlers on the same paths the server uses.
func newTestRouter(tasks *TaskHandler, users *UserHandler) chi.Router {
	r := chi.NewRouter()
	if tasks != nil {
		r.Get("/tasks", tasks.GetAllTasks)
		r.Get("/task/{id}", tasks.GetTask)
		r.Post("/task", tasks.CreateTask)
		r.Put("/task/{id}", tasks.UpdateTask)
	}
	if users != nil {
		r.Get("/users", users.GetAllUsers)
		r.Get("/user", users.GetUser)
		r.Post("/createuser", users.CreateUser)
		r.Post("/login", users.Login)
		r.Delete("/deleteuser", users.DeleteUser)
	}
	return r
}
