package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/task-api/internal/api/middleware"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	log, buf := logger.NewTestLogger()

	var seenTraceID string
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewTraceMiddleware(log))
	r.Post("/tasks", func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = shared.GetTraceID(r.Context())
		require.NotNil(t, logger.FromContext(r.Context()), "request logger should be in context")
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/tasks", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotEmpty(t, seenTraceID)
	assert.Equal(t, seenTraceID, w.Header().Get(shared.TraceIDHeader))

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "request started", entries[0]["msg"])
	assert.Equal(t, "inside handler", entries[1]["msg"])
	assert.Equal(t, seenTraceID, entries[1]["trace_id"])
	assert.NotEmpty(t, entries[1]["request_id"])

	completed := entries[2]
	assert.Equal(t, "request completed", completed["msg"])
	assert.Equal(t, seenTraceID, completed["trace_id"])
	assert.EqualValues(t, http.StatusCreated, completed["status"])
	assert.Equal(t, "/tasks", completed["path"])
}

func TestTraceMiddleware_ImplicitOKStatus(t *testing.T) {
	log, buf := logger.NewTestLogger()
	h := middleware.NewTraceMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1]
	assert.EqualValues(t, http.StatusOK, last["status"])
	assert.EqualValues(t, 2, last["bytes"])
}
