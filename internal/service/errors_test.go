package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/task-manager-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestNewServiceError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, NewServiceError("task", "get_task", "msg", nil))

	for _, sentinel := range []error{store.ErrTaskNotFound, store.ErrUserNotFound, store.ErrUsernameExists} {
		wrapped := fmt.Errorf("context: %w", sentinel)
		assert.Equal(t, sentinel, NewServiceError("task", "op", "msg", wrapped))
	}

	cause := errors.New("boom")
	err := NewServiceError("user", "get_all_users", "failed to list users", cause)
	var svcErr *ServiceError
	assert.ErrorAs(t, err, &svcErr)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "user service get_all_users failed: failed to list users: boom", err.Error())
}
