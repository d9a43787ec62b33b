package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskValidate(t *testing.T) {
	tests := []struct {
		name    string
		task    Task
		wantErr error
	}{
		{
			name: "all fields set",
			task: Task{Title: "test", Status: StatusOpen, Priority: PriorityLow},
		},
		{
			name: "empty task is accepted",
			task: Task{},
		},
		{
			name:    "unknown status",
			task:    Task{Status: "DONE"},
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "lower case status",
			task:    Task{Status: "open"},
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "unknown priority",
			task:    Task{Status: StatusClosed, Priority: "URGENT"},
			wantErr: ErrInvalidPriority,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var vErr *ValidationError
			assert.True(t, errors.As(err, &vErr), "expected a ValidationError")
		})
	}
}

func TestTaskApplyUpdate(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	task := Task{
		ID:               42,
		Title:            "old",
		Description:      "old description",
		Status:           StatusOpen,
		Priority:         PriorityLow,
		CreationDateTime: created,
	}

	task.ApplyUpdate(Task{
		ID:               99,
		Title:            "new",
		Description:      "new description",
		Status:           StatusInProgress,
		Priority:         PriorityHigh,
		CreationDateTime: created.Add(48 * time.Hour),
	})

	assert.Equal(t, int64(42), task.ID, "ID must not change")
	assert.Equal(t, created, task.CreationDateTime, "creation time must not change")
	assert.Equal(t, "new", task.Title)
	assert.Equal(t, "new description", task.Description)
	assert.Equal(t, StatusInProgress, task.Status)
	assert.Equal(t, PriorityHigh, task.Priority)
}

func TestTaskJSON(t *testing.T) {
	t.Run("field names and null enums", func(t *testing.T) {
		task := Task{
			ID:               1,
			Title:            "test",
			CreationDateTime: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		}

		data, err := json.Marshal(task)
		require.NoError(t, err)

		var raw map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.EqualValues(t, 1, raw["id"])
		assert.Equal(t, "test", raw["title"])
		assert.Equal(t, "", raw["description"])
		assert.Nil(t, raw["status"])
		assert.Nil(t, raw["priority"])
		assert.Equal(t, "2025-01-02T03:04:05Z", raw["creationDateTime"])
	})

	t.Run("decodes request body", func(t *testing.T) {
		var task Task
		body := `{"title":"test","description":"desc","status":"OPEN","priority":null}`
		require.NoError(t, json.Unmarshal([]byte(body), &task))

		assert.Equal(t, "test", task.Title)
		assert.Equal(t, StatusOpen, task.Status)
		assert.Equal(t, Priority(""), task.Priority)
	})

	t.Run("rejects non-string status", func(t *testing.T) {
		var task Task
		err := json.Unmarshal([]byte(`{"status":3}`), &task)
		assert.Error(t, err)
	})
}

func TestEnumSQL(t *testing.T) {
	v, err := StatusOpen.Value()
	require.NoError(t, err)
	assert.Equal(t, "OPEN", v)

	v, err = Priority("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	var s Status
	require.NoError(t, s.Scan([]byte("CLOSED")))
	assert.Equal(t, StatusClosed, s)
	require.NoError(t, s.Scan(nil))
	assert.Equal(t, Status(""), s)

	var p Priority
	require.NoError(t, p.Scan("MEDIUM"))
	assert.Equal(t, PriorityMedium, p)
	assert.Error(t, p.Scan(12))
}
