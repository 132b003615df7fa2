package api

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/platform/memory"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/stretchr/testify/require"
)

// newTestHandler wires a handler to a real in-memory store.
func newTestHandler(t *testing.T) *TaskHandler {
	t.Helper()
	svc, err := service.NewTaskService(
		memory.NewMemoryTaskStore(nil),
		events.NewInMemoryEventEmitter(nil),
		nil,
	)
	require.NoError(t, err)
	return NewTaskHandler(svc, nil)
}

// newTestRouter mounts h the same way the server does.
func newTestRouter(h *TaskHandler) http.Handler {
	r := chi.NewRouter()
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.ListTasks)
		r.Post("/", h.CreateTask)
		r.Delete("/", h.DeleteAllTasks)
		r.Get("/summary", h.Summary)
		r.Get("/filter", h.FilterTasks)
		r.Get("/search", h.SearchTasks)
		r.Get("/report", h.Report)
		r.Get("/{id}", h.GetTask)
		r.Put("/{id}", h.UpdateTask)
		r.Patch("/{id}/complete", h.CompleteTask)
		r.Delete("/{id}", h.DeleteTask)
	})
	return r
}
