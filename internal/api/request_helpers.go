package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
)

// getPathID extracts an integer task ID from the URL path parameters.
// A missing or non-integer value is a validation error wrapping
// domain.ErrInvalidID.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(paramName, "must be an integer", domain.ErrInvalidID)
	}
	return id, nil
}

// handlePathID extracts the task ID and writes an error response on failure.
func handlePathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := getPathID(r, "id")
	if err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Debug("invalid task id", slog.String("value", chi.URLParam(r, "id")))
		HandleAPIError(w, r, err, "")
		return 0, false
	}
	return id, true
}

// decodeRequest decodes and validates a JSON body into v, writing the error
// response itself when either step fails.
func decodeRequest(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			shared.RespondWithErrorAndLog(w, r, http.StatusRequestEntityTooLarge, "Request body too large", err)
			return false
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}

	if err := shared.ValidateRequest(v); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	return true
}
