package mocks

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	// Custom behavior functions
	ListTasksFn      func(ctx context.Context) ([]*domain.Task, error)
	GetTaskFn        func(ctx context.Context, id int64) (*domain.Task, error)
	CreateTaskFn     func(ctx context.Context, input service.CreateTaskInput) (*domain.Task, error)
	UpdateTaskFn     func(ctx context.Context, id int64, input service.UpdateTaskInput) (*domain.Task, error)
	CompleteTaskFn   func(ctx context.Context, id int64) (*domain.Task, error)
	DeleteTaskFn     func(ctx context.Context, id int64) error
	DeleteAllTasksFn func(ctx context.Context) (int, error)
	SummaryFn        func(ctx context.Context) (domain.Summary, error)
	FilterTasksFn    func(ctx context.Context, status string) ([]*domain.Task, error)
	SearchTasksFn    func(ctx context.Context, query string) ([]*domain.Task, error)

	// Default return values
	Task           *domain.Task
	Tasks          []*domain.Task
	DefaultSummary domain.Summary
	Removed        int
	DefaultError   error
}

var _ service.TaskService = (*MockTaskService)(nil)

// ListTasks implements the TaskService.ListTasks method
func (m *MockTaskService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return m.Tasks, m.DefaultError
}

// GetTask implements the TaskService.GetTask method
func (m *MockTaskService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return m.Task, m.DefaultError
}

// CreateTask implements the TaskService.CreateTask method
func (m *MockTaskService) CreateTask(ctx context.Context, input service.CreateTaskInput) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, input)
	}
	return m.Task, m.DefaultError
}

// UpdateTask implements the TaskService.UpdateTask method
func (m *MockTaskService) UpdateTask(
	ctx context.Context,
	id int64,
	input service.UpdateTaskInput,
) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, input)
	}
	return m.Task, m.DefaultError
}

// CompleteTask implements the TaskService.CompleteTask method
func (m *MockTaskService) CompleteTask(ctx context.Context, id int64) (*domain.Task, error) {
	if m.CompleteTaskFn != nil {
		return m.CompleteTaskFn(ctx, id)
	}
	return m.Task, m.DefaultError
}

// DeleteTask implements the TaskService.DeleteTask method
func (m *MockTaskService) DeleteTask(ctx context.Context, id int64) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return m.DefaultError
}

// DeleteAllTasks implements the TaskService.DeleteAllTasks method
func (m *MockTaskService) DeleteAllTasks(ctx context.Context) (int, error) {
	if m.DeleteAllTasksFn != nil {
		return m.DeleteAllTasksFn(ctx)
	}
	return m.Removed, m.DefaultError
}

// Summary implements the TaskService.Summary method
func (m *MockTaskService) Summary(ctx context.Context) (domain.Summary, error) {
	if m.SummaryFn != nil {
		return m.SummaryFn(ctx)
	}
	return m.DefaultSummary, m.DefaultError
}

// FilterTasks implements the TaskService.FilterTasks method
func (m *MockTaskService) FilterTasks(ctx context.Context, status string) ([]*domain.Task, error) {
	if m.FilterTasksFn != nil {
		return m.FilterTasksFn(ctx, status)
	}
	return m.Tasks, m.DefaultError
}

// SearchTasks implements the TaskService.SearchTasks method
func (m *MockTaskService) SearchTasks(ctx context.Context, query string) ([]*domain.Task, error) {
	if m.SearchTasksFn != nil {
		return m.SearchTasksFn(ctx, query)
	}
	return m.Tasks, m.DefaultError
}
