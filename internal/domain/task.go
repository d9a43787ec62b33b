package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Status is the lifecycle stage of a task.
type Status string

// Task statuses.
const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "INPROGRESS"
	StatusClosed     Status = "CLOSED"
)

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

// MarshalJSON encodes an unset status as null.
func (s Status) MarshalJSON() ([]byte, error) {
	return marshalEnum(string(s))
}

// UnmarshalJSON accepts a string or null.
func (s *Status) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data)
	if err != nil {
		return err
	}
	*s = Status(v)
	return nil
}

// Value stores an unset status as NULL.
func (s Status) Value() (driver.Value, error) {
	return enumValue(string(s))
}

// Scan reads a nullable text column.
func (s *Status) Scan(src any) error {
	v, err := scanEnum(src)
	if err != nil {
		return fmt.Errorf("scan status: %w", err)
	}
	*s = Status(v)
	return nil
}

// Priority is the urgency label of a task.
type Priority string

// Task priorities.
const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Valid reports whether p is one of the defined priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// MarshalJSON encodes an unset priority as null.
func (p Priority) MarshalJSON() ([]byte, error) {
	return marshalEnum(string(p))
}

// UnmarshalJSON accepts a string or null.
func (p *Priority) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data)
	if err != nil {
		return err
	}
	*p = Priority(v)
	return nil
}

// Value stores an unset priority as NULL.
func (p Priority) Value() (driver.Value, error) {
	return enumValue(string(p))
}

// Scan reads a nullable text column.
func (p *Priority) Scan(src any) error {
	v, err := scanEnum(src)
	if err != nil {
		return fmt.Errorf("scan priority: %w", err)
	}
	*p = Priority(v)
	return nil
}

// Task is a unit of trackable work.
//
// ID and CreationDateTime are assigned by the system when the task is created
// and never change afterwards; the remaining fields are replaced by updates.
type Task struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Status           Status    `json:"status"`
	Priority         Priority  `json:"priority"`
	CreationDateTime time.Time `json:"creationDateTime"`
}

// Validate checks the enumerated fields. Empty status and priority are allowed;
// no other field content is constrained.
func (t *Task) Validate() error {
	if t.Status != "" && !t.Status.Valid() {
		return NewValidationError("status", "must be one of OPEN, INPROGRESS, CLOSED", ErrInvalidStatus)
	}
	if t.Priority != "" && !t.Priority.Valid() {
		return NewValidationError("priority", "must be one of LOW, MEDIUM, HIGH", ErrInvalidPriority)
	}
	return nil
}

// ApplyUpdate copies the mutable fields of src onto t.
// The identifier and creation timestamp are left untouched.
func (t *Task) ApplyUpdate(src Task) {
	t.Title = src.Title
	t.Description = src.Description
	t.Status = src.Status
	t.Priority = src.Priority
}

func marshalEnum(v string) ([]byte, error) {
	if v == "" {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func unmarshalEnum(data []byte) (string, error) {
	if string(data) == "null" {
		return "", nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return "", err
	}
	return v, nil
}

func enumValue(v string) (driver.Value, error) {
	if v == "" {
		return nil, nil
	}
	return v, nil
}

func scanEnum(src any) (string, error) {
	switch v := src.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("unsupported type %T", src)
	}
}
