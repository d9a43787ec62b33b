package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/task-manager-api/internal/store"
)

// ErrMissingDependency is returned by constructors when a required collaborator is nil.
var ErrMissingDependency = errors.New("missing service dependency")

// ServiceError wraps an unexpected failure with the operation that produced it.
type ServiceError struct {
	// Service is the service name (e.g., "task", "user")
	Service string
	// Operation is the operation that failed (e.g., "update_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
// Store sentinels that callers act on are returned directly without wrapping.
func NewServiceError(service, operation, message string, err error) error {
	if err == nil {
		return nil
	}

	for _, sentinel := range []error{
		store.ErrTaskNotFound,
		store.ErrUserNotFound,
		store.ErrUsernameExists,
	} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}

	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

func missingDependency(service, name string) error {
	return &ServiceError{
		Service:   service,
		Operation: "create_service",
		Message:   name + " cannot be nil",
		Err:       ErrMissingDependency,
	}
}
