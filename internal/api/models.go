package api

import (
	"github.com/phrazzld/task-api/internal/domain"
)

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Description *string `json:"description"`
	// Status defaults to pending when omitted.
	Status *string `json:"status"`
}

// UpdateTaskRequest is the body of PUT /tasks/{id}.
// Omitted or null fields keep their current values.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// TaskResponse is the JSON representation of a task.
type TaskResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
}

// SummaryResponse reports task counts.
type SummaryResponse struct {
	TotalTasks     int `json:"total_tasks"`
	PendingTasks   int `json:"pending_tasks"`
	CompletedTasks int `json:"completed_tasks"`
}

// DetailResponse acknowledges a deletion.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse is returned by the root endpoint.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by the liveness endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// VersionResponse describes the running build.
type VersionResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Env     string `json:"env"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
	}
}

// tasksToResponse never returns nil so that empty lists encode as [].
func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return out
}

func summaryToResponse(s domain.Summary) SummaryResponse {
	return SummaryResponse{
		TotalTasks:     s.Total,
		PendingTasks:   s.Pending,
		CompletedTasks: s.Completed,
	}
}
