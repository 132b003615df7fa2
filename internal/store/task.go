package store

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
//
// Implementations must be safe for concurrent use: mutations are mutually
// exclusive, and reads observe a consistent snapshot relative to any single
// mutation. Returned tasks are copies owned by the caller.
type TaskStore interface {
	// List returns every task in insertion order. Never nil.
	List(ctx context.Context) ([]*domain.Task, error)

	// Create assigns the next identifier to task and stores it.
	// Identifiers increase monotonically and are never reused.
	// Returns ErrInvalidEntity (wrapping the validation error) for invalid tasks.
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// GetByID retrieves a task by its identifier.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Update merges patch into the stored task and returns the result.
	// Returns ErrTaskNotFound if the task does not exist, or a
	// validation error if the merged task would be invalid.
	Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)

	// Complete sets the task status to completed. Idempotent.
	// Returns ErrTaskNotFound if the task does not exist.
	Complete(ctx context.Context, id int64) (*domain.Task, error)

	// Delete removes a task by its identifier.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every task and returns how many were removed.
	// The identifier counter is not reset.
	DeleteAll(ctx context.Context) (int, error)

	// Summary returns total, pending and completed counts.
	Summary(ctx context.Context) (domain.Summary, error)

	// FilterByStatus returns tasks whose status equals status, in insertion order.
	FilterByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)

	// SearchByTitle returns tasks whose title contains query,
	// case-insensitively, in insertion order. An empty query matches all.
	SearchByTitle(ctx context.Context, query string) ([]*domain.Task, error)
}
