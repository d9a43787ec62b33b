package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-manager-api/internal/domain"
)

// getPathTaskID extracts a positive task identifier from the URL path.
//
// Returns:
//   - (id, nil): The parsed identifier if valid
//   - (0, error): A validation error wrapping domain.ErrInvalidID otherwise
func getPathTaskID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrInvalidID)
	}

	return id, nil
}

// getRequiredQueryParam returns the trimmed value of a query parameter,
// or a validation error when it is missing or blank.
func getRequiredQueryParam(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return "", domain.NewValidationError(name, "is required", domain.ErrValidation)
	}
	return value, nil
}
