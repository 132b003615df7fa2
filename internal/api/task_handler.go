package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/report"
	"github.com/phrazzld/task-api/internal/service"
)

// Acknowledgement texts returned by the delete endpoints.
const (
	TaskDeletedDetail     = "Task deleted"
	AllTasksDeletedDetail = "All tasks have been deleted successfully!"
)

const reportFilename = "tasks-report.pdf"

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
	now         func() time.Time
	buildReport func([]*domain.Task, domain.Summary, time.Time) ([]byte, error)
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With("component", "task_handler"),
		now:         time.Now,
		buildReport: report.BuildTaskReport,
	}
}

func (h *TaskHandler) log(r *http.Request) *slog.Logger {
	return logger.FromContextOrDefault(r.Context(), h.logger)
}

// ListTasks handles GET /tasks requests
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// CreateTask handles POST /tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// GetTask handles GET /tasks/{id} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PUT /tasks/{id} requests.
// Only the fields present in the body are changed.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), id, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// CompleteTask handles PATCH /tasks/{id}/complete requests
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.CompleteTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to complete task")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /tasks/{id} requests
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DetailResponse{Detail: TaskDeletedDetail})
}

// DeleteAllTasks handles DELETE /tasks requests
func (h *TaskHandler) DeleteAllTasks(w http.ResponseWriter, r *http.Request) {
	removed, err := h.taskService.DeleteAllTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete tasks")
		return
	}

	h.log(r).Debug("delete all handled", slog.Int("removed", removed))
	shared.RespondWithJSON(w, r, http.StatusOK, DetailResponse{Detail: AllTasksDeletedDetail})
}

// Summary handles GET /tasks/summary requests
func (h *TaskHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.taskService.Summary(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to summarize tasks")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, summaryToResponse(summary))
}

// FilterTasks handles GET /tasks/filter?status= requests.
// A missing status is treated like an unrecognised one.
func (h *TaskHandler) FilterTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.FilterTasks(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to filter tasks")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// SearchTasks handles GET /tasks/search?title= requests.
// A missing title matches every task.
func (h *TaskHandler) SearchTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.SearchTasks(r.Context(), r.URL.Query().Get("title"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to search tasks")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// Report handles GET /tasks/report requests with a PDF of every task.
func (h *TaskHandler) Report(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tasks, err := h.taskService.ListTasks(ctx)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build report")
		return
	}

	// Counts come from the same snapshot as the rows.
	pdf, err := h.buildReport(tasks, domain.Summarize(tasks), h.now())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build report")
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+reportFilename)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		h.log(r).Warn("failed to write report", slog.Any("error", err))
	}
}
