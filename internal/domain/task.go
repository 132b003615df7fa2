package domain

import (
	"strings"
)

// TaskStatus represents the completion state of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// TaskStatuses lists every recognised status in a stable order.
var TaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusCompleted}

// IsValid reports whether s is a recognised status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// ParseTaskStatus converts raw input into a TaskStatus. Matching is exact:
// "Completed" is not a recognised status.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	status := TaskStatus(raw)
	if !status.IsValid() {
		return "", NewValidationError("status", statusMessage(), ErrInvalidStatus)
	}
	return status, nil
}

// Task is a single unit of work tracked by the service.
type Task struct {
	// ID is assigned by the store on creation and never changes.
	ID int64

	Title string

	// Description is optional; nil means "not set".
	Description *string

	Status TaskStatus
}

// NewTask creates a Task that has not been stored yet (ID is zero).
// The title is trimmed and an empty status defaults to pending.
// Returns an error if validation fails.
func NewTask(title string, description *string, status TaskStatus) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}

	task := &Task{
		Title:       strings.TrimSpace(title),
		Description: cloneString(description),
		Status:      status,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "is required", ErrEmptyTitle)
	}

	if !t.Status.IsValid() {
		return NewValidationError("status", statusMessage(), ErrInvalidStatus)
	}

	return nil
}

// Complete marks the task as completed. Calling it again is a no-op.
func (t *Task) Complete() {
	t.Status = TaskStatusCompleted
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	c.Description = cloneString(t.Description)
	return &c
}

// TaskPatch holds a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// Apply merges the patch into the task. The merged result is validated
// before anything is written, so t is untouched when Apply fails.
func (t *Task) Apply(p TaskPatch) error {
	merged := t.Clone()

	if p.Title != nil {
		merged.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		merged.Description = cloneString(p.Description)
	}
	if p.Status != nil {
		merged.Status = *p.Status
	}

	if err := merged.Validate(); err != nil {
		return err
	}

	*t = *merged
	return nil
}

// Summary holds aggregate counts over a task collection.
type Summary struct {
	Total     int
	Pending   int
	Completed int
}

// Summarize counts tasks by status.
func Summarize(tasks []*Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case TaskStatusPending:
			s.Pending++
		case TaskStatusCompleted:
			s.Completed++
		}
	}
	return s
}

// statusMessage lists the recognised statuses, e.g. "must be one of: pending, completed".
func statusMessage() string {
	names := make([]string, len(TaskStatuses))
	for i, s := range TaskStatuses {
		names[i] = string(s)
	}
	return "must be one of: " + strings.Join(names, ", ")
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
