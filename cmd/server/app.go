package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/platform/memory"
	"github.com/phrazzld/task-api/internal/platform/metrics"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
)

// taskEventLogger records every task lifecycle event at debug level.
type taskEventLogger struct {
	logger *slog.Logger
}

// HandleEvent implements events.EventHandler.
func (h *taskEventLogger) HandleEvent(ctx context.Context, event *events.TaskEvent) error {
	h.logger.DebugContext(ctx, "task event",
		"event_id", event.ID,
		"event_type", event.Type,
		"task_id", event.TaskID,
		"count", event.Count)
	return nil
}

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	taskStore    store.TaskStore
	eventEmitter *events.InMemoryEventEmitter
	taskService  service.TaskService

	// metrics is nil when metrics are disabled.
	metrics *metrics.Metrics
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	app := &application{
		config: cfg,
		logger: logger,
	}

	taskStore := memory.NewMemoryTaskStore(logger)
	app.taskStore = taskStore

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(&taskEventLogger{
		logger: logger.With("component", "task_event_logger"),
	})

	if cfg.Metrics.Enabled {
		app.metrics = metrics.New(logger)
		if err := app.metrics.RegisterTaskGauges(taskStore); err != nil {
			return nil, fmt.Errorf("failed to register task gauges: %w", err)
		}
		app.eventEmitter.RegisterHandler(app.metrics.EventHandler())
		logger.Info("Metrics enabled", "path", cfg.Metrics.Path)
	}

	var err error
	app.taskService, err = service.NewTaskService(app.taskStore, app.eventEmitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns when ctx is cancelled and the server has shut down, or when
// the server fails.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
// The in-memory store is discarded with the process, so only its final
// counts are reported.
func (app *application) cleanup() {
	if summary, err := app.taskStore.Summary(context.Background()); err == nil {
		app.logger.Info("Final task counts",
			"total", summary.Total,
			"pending", summary.Pending,
			"completed", summary.Completed)
	}

	app.logger.Info("Application shutdown completed")
}
