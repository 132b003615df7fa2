package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

const genericErrorMessage = "An unexpected error occurred"

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrors validator.ValidationErrors
	switch {
	case err == nil:
		return http.StatusInternalServerError

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Validation errors, including store-level invalid entities
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &validationErrors):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return genericErrorMessage
	}

	var validationErr *domain.ValidationError
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, store.ErrNotFound):
		return "Not found"
	case errors.As(err, &validationErr):
		// Domain validation messages are written for clients.
		return validationErr.Error()
	case errors.As(err, &validationErrors):
		return SanitizeValidationError(validationErrors)
	case errors.Is(err, domain.ErrValidation), errors.Is(err, store.ErrInvalidEntity):
		return "Validation error"
	default:
		return genericErrorMessage
	}
}

// SanitizeValidationError turns validator failures into a short message
// naming the first offending field by its JSON name.
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation error"
	}
	fe := errs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the error response for err and logs the details.
// defaultMessage, when set, replaces the generic text of 5xx responses.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMessage string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status >= http.StatusInternalServerError && defaultMessage != "" {
		message = defaultMessage
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
