package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/task-manager-api/internal/api"
	apiMiddleware "github.com/phrazzld/task-manager-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{apiMiddleware.TraceIDHeader},
		MaxAge:         300,
	}))

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.signer)

	// Task endpoints, guarded by bearer tokens unless disabled in config
	r.Group(func(r chi.Router) {
		if app.config.Auth.ProtectTasks {
			r.Use(authMiddleware.Authenticate)
		}
		r.Get("/tasks", taskHandler.GetAllTasks)
		r.Get("/task/{id}", taskHandler.GetTask)
		r.Post("/task", taskHandler.CreateTask)
		r.Put("/task/{id}", taskHandler.UpdateTask)
	})

	// User directory and login endpoints (public)
	r.Get("/users", userHandler.GetAllUsers)
	r.Get("/user", userHandler.GetUser)
	r.Post("/createuser", userHandler.CreateUser)
	r.Post("/login", userHandler.Login)
	r.Delete("/deleteuser", userHandler.DeleteUser)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
