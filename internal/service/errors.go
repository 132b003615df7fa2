package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// Error handling principles:
// 1. Expected conditions are returned as sentinels (store.ErrTaskNotFound)
//    or domain validation errors, unwrapped, so callers can use errors.Is/As.
// 2. Unexpected errors are wrapped in TaskServiceError with the operation name.
// 3. The API layer maps errors to HTTP status codes.

// TaskServiceError wraps errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
// Not-found and validation errors are returned as they are.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, store.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
		return err
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
