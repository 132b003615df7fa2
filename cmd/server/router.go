package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/task-api/internal/api"
	apiMiddleware "github.com/phrazzld/task-api/internal/api/middleware"
	"github.com/phrazzld/task-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.Recoverer)
	if app.metrics != nil {
		r.Use(apiMiddleware.NewMetricsMiddleware(app.metrics))
	}
	r.Use(apiMiddleware.NewRateLimitMiddleware(app.config.RateLimit.RPS, app.config.RateLimit.Burst))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	systemHandler := api.NewSystemHandler(app.config.App.Name, app.config.App.Version, app.config.App.Env)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)

	r.Get("/", systemHandler.Root)
	r.Get("/health", systemHandler.Health)
	r.Get("/version", systemHandler.Version)
	if app.metrics != nil {
		r.Handle(app.config.Metrics.Path, app.metrics.Handler())
	}

	// Static segments are registered alongside {id}; chi prefers them.
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.ListTasks)
		r.Post("/", taskHandler.CreateTask)
		r.Delete("/", taskHandler.DeleteAllTasks)

		r.Get("/summary", taskHandler.Summary)
		r.Get("/filter", taskHandler.FilterTasks)
		r.Get("/search", taskHandler.SearchTasks)
		r.Get("/report", taskHandler.Report)

		r.Get("/{id}", taskHandler.GetTask)
		r.Put("/{id}", taskHandler.UpdateTask)
		r.Delete("/{id}", taskHandler.DeleteTask)
		r.Patch("/{id}/complete", taskHandler.CompleteTask)
	})

	return r
}
