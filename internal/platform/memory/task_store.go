package memory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// MemoryTaskStore implements the store.TaskStore interface
// using a mutex-guarded map plus an insertion-order index.
type MemoryTaskStore struct {
	mu     sync.RWMutex
	tasks  map[int64]*domain.Task
	order  []int64
	nextID int64
	logger *slog.Logger
}

// NewMemoryTaskStore creates an empty MemoryTaskStore whose first task gets ID 1.
// If logger is nil, a default logger will be used.
func NewMemoryTaskStore(logger *slog.Logger) *MemoryTaskStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &MemoryTaskStore{
		tasks:  make(map[int64]*domain.Task),
		order:  make([]int64, 0),
		nextID: 1,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure MemoryTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MemoryTaskStore)(nil)

// List implements store.TaskStore.List
func (s *MemoryTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	return s.collect(func(*domain.Task) bool { return true }), nil
}

// Create implements store.TaskStore.Create
func (s *MemoryTaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, store.NewStoreError("task", "create", "task is nil", store.ErrInvalidEntity)
	}
	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	stored := task.Clone()

	s.mu.Lock()
	stored.ID = s.nextID
	s.nextID++
	s.tasks[stored.ID] = stored
	s.order = append(s.order, stored.ID)
	s.mu.Unlock()

	s.logger.Debug("task stored", slog.Int64("task_id", stored.ID))
	return stored.Clone(), nil
}

// GetByID implements store.TaskStore.GetByID
func (s *MemoryTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return task.Clone(), nil
}

// Update implements store.TaskStore.Update
func (s *MemoryTaskStore) Update(
	ctx context.Context,
	id int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	if err := task.Apply(patch); err != nil {
		return nil, err
	}
	return task.Clone(), nil
}

// Complete implements store.TaskStore.Complete
func (s *MemoryTaskStore) Complete(ctx context.Context, id int64) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	task.Complete()
	return task.Clone(), nil
}

// Delete implements store.TaskStore.Delete
func (s *MemoryTaskStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	s.logger.Debug("task removed", slog.Int64("task_id", id))
	return nil
}

// DeleteAll implements store.TaskStore.DeleteAll
func (s *MemoryTaskStore) DeleteAll(ctx context.Context) (int, error) {
	s.mu.Lock()
	removed := len(s.order)
	s.tasks = make(map[int64]*domain.Task)
	s.order = make([]int64, 0)
	s.mu.Unlock()

	s.logger.Debug("all tasks removed", slog.Int("count", removed))
	return removed, nil
}

// Summary implements store.TaskStore.Summary
func (s *MemoryTaskStore) Summary(ctx context.Context) (domain.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := domain.Summary{Total: len(s.order)}
	for _, id := range s.order {
		switch s.tasks[id].Status {
		case domain.TaskStatusPending:
			summary.Pending++
		case domain.TaskStatusCompleted:
			summary.Completed++
		}
	}
	return summary, nil
}

// FilterByStatus implements store.TaskStore.FilterByStatus
func (s *MemoryTaskStore) FilterByStatus(
	ctx context.Context,
	status domain.TaskStatus,
) ([]*domain.Task, error) {
	return s.collect(func(t *domain.Task) bool { return t.Status == status }), nil
}

// SearchByTitle implements store.TaskStore.SearchByTitle
func (s *MemoryTaskStore) SearchByTitle(ctx context.Context, query string) ([]*domain.Task, error) {
	needle := strings.ToLower(query)
	return s.collect(func(t *domain.Task) bool {
		return strings.Contains(strings.ToLower(t.Title), needle)
	}), nil
}

// collect copies every task matching keep, in insertion order, under the read lock.
func (s *MemoryTaskStore) collect(keep func(*domain.Task) bool) []*domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Task, 0, len(s.order))
	for _, id := range s.order {
		task := s.tasks[id]
		if keep(task) {
			out = append(out, task.Clone())
		}
	}
	return out
}
