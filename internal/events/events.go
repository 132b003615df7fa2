package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType identifies what happened to a task.
type EventType string

// Task lifecycle event types.
const (
	TaskCreated   EventType = "task.created"
	TaskUpdated   EventType = "task.updated"
	TaskCompleted EventType = "task.completed"
	TaskDeleted   EventType = "task.deleted"
	TasksCleared  EventType = "tasks.cleared"
)

// EventTypes lists every event type in a stable order.
var EventTypes = []EventType{TaskCreated, TaskUpdated, TaskCompleted, TaskDeleted, TasksCleared}

// TaskEvent records a single successful task mutation.
type TaskEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	Type EventType `json:"type"`

	// TaskID is zero for events that do not target a single task (TasksCleared).
	TaskID int64 `json:"task_id,omitempty"`

	// Count is the number of tasks affected by bulk events.
	Count int `json:"count,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewTaskEvent creates an event for a single task.
func NewTaskEvent(eventType EventType, taskID int64) *TaskEvent {
	return &TaskEvent{
		ID:        uuid.New(),
		Type:      eventType,
		TaskID:    taskID,
		Count:     1,
		CreatedAt: time.Now().UTC(),
	}
}

// NewTasksClearedEvent creates an event for a bulk delete of count tasks.
func NewTasksClearedEvent(count int) *TaskEvent {
	return &TaskEvent{
		ID:        uuid.New(),
		Type:      TasksCleared,
		Count:     count,
		CreatedAt: time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *TaskEvent) error
}

// HandlerFunc adapts an ordinary function to the EventHandler interface.
type HandlerFunc func(ctx context.Context, event *TaskEvent) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *TaskEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *TaskEvent) error
}
