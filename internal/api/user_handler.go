package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-manager-api/internal/api/shared"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/service"
	"github.com/phrazzld/task-manager-api/internal/service/auth"
)

// UserHandler handles user directory and login requests
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if userService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("userService cannot be nil for UserHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserHandler{
		userService: userService,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// GetAllUsers handles GET /users requests
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetAllUsers(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users")
		return
	}

	response := make([]UserResponse, 0, len(users))
	for i := range users {
		response = append(response, userToResponse(&users[i]))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetUser handles GET /user?username= requests
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	username, err := getRequiredQueryParam(r, "username")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.userService.GetUser(r.Context(), username)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// CreateUser handles POST /createuser requests
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateUserRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	user, err := h.userService.AddUser(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	log.Info("user created", slog.String("username", user.Username))
	shared.RespondWithJSON(w, r, http.StatusCreated, userToResponse(user))
}

// DeleteUser handles DELETE /deleteuser?username= requests
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	username, err := getRequiredQueryParam(r, "username")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.userService.RemoveUser(r.Context(), username); err != nil {
		HandleAPIError(w, r, err, "Failed to delete user")
		return
	}

	log.Info("user deleted", slog.String("username", username))
	w.WriteHeader(http.StatusNoContent)
}

// Login handles POST /login requests
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	result, err := h.userService.Verify(r.Context(), auth.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}
	if !result.Authenticated {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid credentials",
			auth.ErrInvalidCredentials, shared.WithElevatedLogLevel())
		return
	}

	log.Debug("login succeeded", slog.String("username", req.Username))
	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}
