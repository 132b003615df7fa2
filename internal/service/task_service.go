package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// CreateTaskInput carries the fields accepted when creating a task.
// A nil Status means "use the default" (pending).
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      *string
}

// UpdateTaskInput carries a partial update. Nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
}

// TaskService provides task-related operations
type TaskService interface {
	// ListTasks returns all tasks in insertion order.
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// GetTask retrieves a task by its ID.
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// CreateTask validates input and stores a new task.
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)

	// UpdateTask merges the provided fields into an existing task.
	UpdateTask(ctx context.Context, id int64, input UpdateTaskInput) (*domain.Task, error)

	// CompleteTask marks a task as completed. Idempotent.
	CompleteTask(ctx context.Context, id int64) (*domain.Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id int64) error

	// DeleteAllTasks removes every task and returns how many were removed.
	DeleteAllTasks(ctx context.Context) (int, error)

	// Summary returns aggregate counts.
	Summary(ctx context.Context) (domain.Summary, error)

	// FilterTasks returns tasks with exactly the given status.
	// Unrecognised statuses are a validation error.
	FilterTasks(ctx context.Context, status string) ([]*domain.Task, error)

	// SearchTasks returns tasks whose title contains query, case-insensitively.
	SearchTasks(ctx context.Context, query string) ([]*domain.Task, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	store        store.TaskStore
	eventEmitter events.EventEmitter
	logger       *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	taskStore store.TaskStore,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "taskStore cannot be nil",
		}
	}
	if eventEmitter == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "eventEmitter cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		store:        taskStore,
		eventEmitter: eventEmitter,
		logger:       logger.With("component", "task_service"),
	}, nil
}

// log returns the request-scoped logger when one is present.
func (s *taskServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.store.List(ctx)
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	s.log(ctx).Debug("listed tasks", "count", len(tasks))
	return tasks, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, NewTaskServiceError("get_task", "failed to get task", err)
	}
	return task, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	log := s.log(ctx)

	var status domain.TaskStatus
	if input.Status != nil {
		parsed, err := domain.ParseTaskStatus(*input.Status)
		if err != nil {
			log.Debug("rejected task with invalid status", "status", *input.Status)
			return nil, err
		}
		status = parsed
	}

	task, err := domain.NewTask(input.Title, input.Description, status)
	if err != nil {
		log.Debug("rejected invalid task", "error", err)
		return nil, err
	}

	created, err := s.store.Create(ctx, task)
	if err != nil {
		log.Error("failed to store task", "error", err)
		return nil, NewTaskServiceError("create_task", "failed to store task", err)
	}

	log.Info("task created", "task_id", created.ID, "status", created.Status)
	s.emit(ctx, events.NewTaskEvent(events.TaskCreated, created.ID))
	return created, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id int64,
	input UpdateTaskInput,
) (*domain.Task, error) {
	patch := domain.TaskPatch{
		Title:       input.Title,
		Description: input.Description,
	}
	if input.Status != nil {
		status, err := domain.ParseTaskStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		patch.Status = &status
	}

	// Nothing to merge: answer with the current task and emit no event.
	if patch.IsEmpty() {
		current, err := s.store.GetByID(ctx, id)
		if err != nil {
			return nil, NewTaskServiceError("update_task", "failed to get task", err)
		}
		s.log(ctx).Debug("empty task update", "task_id", id)
		return current, nil
	}

	updated, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, NewTaskServiceError("update_task", "failed to update task", err)
	}

	s.log(ctx).Info("task updated", "task_id", id, "status", updated.Status)
	s.emit(ctx, events.NewTaskEvent(events.TaskUpdated, id))
	return updated, nil
}

// CompleteTask implements TaskService.CompleteTask
func (s *taskServiceImpl) CompleteTask(ctx context.Context, id int64) (*domain.Task, error) {
	completed, err := s.store.Complete(ctx, id)
	if err != nil {
		return nil, NewTaskServiceError("complete_task", "failed to complete task", err)
	}

	s.log(ctx).Info("task completed", "task_id", id)
	s.emit(ctx, events.NewTaskEvent(events.TaskCompleted, id))
	return completed, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	s.log(ctx).Info("task deleted", "task_id", id)
	s.emit(ctx, events.NewTaskEvent(events.TaskDeleted, id))
	return nil
}

// DeleteAllTasks implements TaskService.DeleteAllTasks
func (s *taskServiceImpl) DeleteAllTasks(ctx context.Context) (int, error) {
	removed, err := s.store.DeleteAll(ctx)
	if err != nil {
		return 0, NewTaskServiceError("delete_all_tasks", "failed to delete tasks", err)
	}

	s.log(ctx).Info("all tasks deleted", "count", removed)
	s.emit(ctx, events.NewTasksClearedEvent(removed))
	return removed, nil
}

// Summary implements TaskService.Summary
func (s *taskServiceImpl) Summary(ctx context.Context) (domain.Summary, error) {
	summary, err := s.store.Summary(ctx)
	if err != nil {
		return domain.Summary{}, NewTaskServiceError("summary", "failed to summarize tasks", err)
	}
	return summary, nil
}

// FilterTasks implements TaskService.FilterTasks
func (s *taskServiceImpl) FilterTasks(ctx context.Context, status string) ([]*domain.Task, error) {
	parsed, err := domain.ParseTaskStatus(status)
	if err != nil {
		return nil, err
	}

	tasks, err := s.store.FilterByStatus(ctx, parsed)
	if err != nil {
		return nil, NewTaskServiceError("filter_tasks", "failed to filter tasks", err)
	}
	s.log(ctx).Debug("filtered tasks", "status", parsed, "count", len(tasks))
	return tasks, nil
}

// SearchTasks implements TaskService.SearchTasks
func (s *taskServiceImpl) SearchTasks(ctx context.Context, query string) ([]*domain.Task, error) {
	tasks, err := s.store.SearchByTitle(ctx, query)
	if err != nil {
		return nil, NewTaskServiceError("search_tasks", "failed to search tasks", err)
	}
	s.log(ctx).Debug("searched tasks", "query_length", len(query), "count", len(tasks))
	return tasks, nil
}

// emit publishes event. A failing handler never fails the mutation that
// already happened; it is logged instead.
func (s *taskServiceImpl) emit(ctx context.Context, event *events.TaskEvent) {
	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		s.log(ctx).Warn("failed to emit task event",
			"error", err,
			"event_id", event.ID,
			"event_type", event.Type)
	}
}
