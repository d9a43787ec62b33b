package api

import (
	"time"

	"github.com/phrazzld/task-manager-api/internal/domain"
)

// TaskRequest defines the payload for creating or replacing a task.
// Identifier and creation time are assigned by the server and not accepted here.
type TaskRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      domain.Status   `json:"status"      validate:"omitempty,oneof=OPEN INPROGRESS CLOSED"`
	Priority    domain.Priority `json:"priority"    validate:"omitempty,oneof=LOW MEDIUM HIGH"`
}

// ToDomain converts the request into a domain.Task.
func (r TaskRequest) ToDomain() domain.Task {
	return domain.Task{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
	}
}

// CreateUserRequest defines the payload for the user creation endpoint.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=72"`
	Role     string `json:"role"     validate:"max=64"`
}

// UserResponse is the public view of a user. The password hash is never exposed.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	// Token is the signed bearer token for the Authorization header
	Token string `json:"token"`

	// ExpiresAt is the instant the token stops being accepted
	ExpiresAt time.Time `json:"expiresAt"`
}

// userToResponse converts a domain.User to a UserResponse
func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
