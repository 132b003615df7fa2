// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// All other validation errors wrap it, so errors.Is(err, ErrValidation)
	// identifies any client-side input problem.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when a task ID is malformed or not positive.
	ErrInvalidID = fmt.Errorf("%w: invalid ID", ErrValidation)

	// ErrEmptyTitle is returned when a task title is empty after trimming.
	ErrEmptyTitle = fmt.Errorf("%w: title cannot be empty", ErrValidation)

	// ErrInvalidStatus is returned when a task status is not recognised.
	ErrInvalidStatus = fmt.Errorf("%w: invalid task status", ErrValidation)
)

// ValidationError describes a validation failure on a single field.
type ValidationError struct {
	Field   string // The offending field (e.g., "title", "status")
	Message string // Human readable reason
	Err     error  // Underlying sentinel error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
// A ValidationError without a cause still matches ErrValidation.
func (e *ValidationError) Unwrap() error {
	if e.Err == nil {
		return ErrValidation
	}
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
