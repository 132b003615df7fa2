package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/mocks"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskHandler_Scenario(t *testing.T) {
	router := newTestRouter(newTestHandler(t))

	// Create two tasks
	w := testutils.DoRequest(t, router, http.MethodPost, "/tasks", map[string]string{"title": "Buy milk"})
	require.Equal(t, http.StatusCreated, w.Code)
	milk := testutils.DecodeJSON[TaskResponse](t, w)
	assert.Equal(t, TaskResponse{ID: 1, Title: "Buy milk", Status: "pending"}, milk)
	assert.Contains(t, w.Body.String(), `"description":null`)

	w = testutils.DoRequest(t, router, http.MethodPost, "/tasks", map[string]string{"title": "Clean house"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 2, testutils.DecodeJSON[TaskResponse](t, w).ID)

	// Complete one
	w = testutils.DoRequest(t, router, http.MethodPatch, "/tasks/1/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", testutils.DecodeJSON[TaskResponse](t, w).Status)

	w = testutils.DoRequest(t, router, http.MethodGet, "/tasks/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, SummaryResponse{TotalTasks: 2, PendingTasks: 1, CompletedTasks: 1}, testutils.DecodeJSON[SummaryResponse](t, w))

	w = testutils.DoRequest(t, router, http.MethodGet, "/tasks/filter?status=pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	pending := testutils.DecodeJSON[[]TaskResponse](t, w)
	require.Len(t, pending, 1)
	assert.Equal(t, "Clean house", pending[0].Title)

	w = testutils.DoRequest(t, router, http.MethodGet, "/tasks/search?title=MILK", nil)
	require.Equal(t, http.StatusOK, w.Code)
	found := testutils.DecodeJSON[[]TaskResponse](t, w)
	require.Len(t, found, 1)
	assert.EqualValues(t, 1, found[0].ID)

	// Delete and confirm it is gone
	w = testutils.DoRequest(t, router, http.MethodDelete, "/tasks/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, DetailResponse{Detail: TaskDeletedDetail}, testutils.DecodeJSON[DetailResponse](t, w))

	w = testutils.DoRequest(t, router, http.MethodGet, "/tasks/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Delete everything; ids keep increasing afterwards
	w = testutils.DoRequest(t, router, http.MethodDelete, "/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, DetailResponse{Detail: AllTasksDeletedDetail}, testutils.DecodeJSON[DetailResponse](t, w))

	w = testutils.DoRequest(t, router, http.MethodGet, "/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())

	w = testutils.DoRequest(t, router, http.MethodGet, "/tasks/summary", nil)
	assert.Equal(t, SummaryResponse{}, testutils.DecodeJSON[SummaryResponse](t, w))

	w = testutils.DoRequest(t, router, http.MethodPost, "/tasks", map[string]string{"title": "After clear"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 3, testutils.DecodeJSON[TaskResponse](t, w).ID)
}

func TestTaskHandler_CreateTask(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		expectedStatus  int
		expectedError   string
		expectedTitle   string
		expectedState   string
		expectedDescPtr bool
	}{
		{
			name:           "minimal task",
			body:           `{"title": "Buy milk"}`,
			expectedStatus: http.StatusCreated,
			expectedTitle:  "Buy milk",
			expectedState:  "pending",
		},
		{
			name:            "full task with trimmed title",
			body:            `{"title": "  Walk dog  ", "description": "before 8", "status": "completed"}`,
			expectedStatus:  http.StatusCreated,
			expectedTitle:   "Walk dog",
			expectedState:   "completed",
			expectedDescPtr: true,
		},
		{
			name:           "missing title",
			body:           `{"description": "no title"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "Invalid title: required field",
		},
		{
			name:           "whitespace title",
			body:           `{"title": "   "}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "invalid title: is required",
		},
		{
			name:           "unknown status",
			body:           `{"title": "x", "status": "done"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "invalid status: must be one of: pending, completed",
		},
		{
			name:           "empty status",
			body:           `{"title": "x", "status": ""}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "invalid status: must be one of: pending, completed",
		},
		{
			name:           "malformed json",
			body:           `{"title": "x",}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request format",
		},
		{
			name:           "wrong type",
			body:           `{"title": 42}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request format",
		},
		{
			name:           "empty body",
			body:           ``,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request format",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(newTestHandler(t))

			w := testutils.DoRequest(t, router, http.MethodPost, "/tasks", tc.body)
			require.Equal(t, tc.expectedStatus, w.Code, w.Body.String())

			if tc.expectedError != "" {
				errResp := testutils.DecodeJSON[shared.ErrorResponse](t, w)
				assert.Equal(t, tc.expectedError, errResp.Error)
				return
			}

			task := testutils.DecodeJSON[TaskResponse](t, w)
			assert.Equal(t, tc.expectedTitle, task.Title)
			assert.Equal(t, tc.expectedState, task.Status)
			assert.Equal(t, tc.expectedDescPtr, task.Description != nil)
		})
	}
}

func TestTaskHandler_CreateTask_BodyTooLarge(t *testing.T) {
	router := newTestRouter(newTestHandler(t))

	body := `{"title": "` + strings.Repeat("a", int(shared.MaxRequestBodyBytes)) + `"}`
	w := testutils.DoRequest(t, router, http.MethodPost, "/tasks", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	router := newTestRouter(newTestHandler(t))
	w := testutils.DoRequest(t, router, http.MethodPost, "/tasks",
		map[string]string{"title": "Buy milk", "description": "2 liters"})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		w := testutils.DoRequest(t, router, http.MethodPut, "/tasks/1", `{"status": "completed"}`)
		require.Equal(t, http.StatusOK, w.Code)

		task := testutils.DecodeJSON[TaskResponse](t, w)
		assert.Equal(t, "Buy milk", task.Title)
		require.NotNil(t, task.Description)
		assert.Equal(t, "2 liters", *task.Description)
		assert.Equal(t, "completed", task.Status)
	})

	t.Run("full update", func(t *testing.T) {
		w := testutils.DoRequest(t, router, http.MethodPut, "/tasks/1",
			`{"title": "Buy oat milk", "description": "1 liter", "status": "pending"}`)
		require.Equal(t, http.StatusOK, w.Code)

		task := testutils.DecodeJSON[TaskResponse](t, w)
		assert.Equal(t, "Buy oat milk", task.Title)
		assert.Equal(t, "1 liter", *task.Description)
		assert.Equal(t, "pending", task.Status)
	})

	t.Run("empty title rejected and task unchanged", func(t *testing.T) {
		w := testutils.DoRequest(t, router, http.MethodPut, "/tasks/1", `{"title": " "}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		w = testutils.DoRequest(t, router, http.MethodGet, "/tasks/1", nil)
		assert.Equal(t, "Buy oat milk", testutils.DecodeJSON[TaskResponse](t, w).Title)
	})

	t.Run("invalid status", func(t *testing.T) {
		w := testutils.DoRequest(t, router, http.MethodPut, "/tasks/1", `{"status": "archived"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("unknown task", func(t *testing.T) {
		w := testutils.DoRequest(t, router, http.MethodPut, "/tasks/99", `{"title": "x"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Task not found", testutils.DecodeJSON[shared.ErrorResponse](t, w).Error)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := testutils.DoRequest(t, router, http.MethodPut, "/tasks/1", `not json`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaskHandler_PathID(t *testing.T) {
	router := newTestRouter(newTestHandler(t))

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/tasks/abc"},
		{http.MethodPut, "/tasks/1.5"},
		{http.MethodPatch, "/tasks/x/complete"},
		{http.MethodDelete, "/tasks/one"},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := testutils.DoRequest(t, router, tc.method, tc.path, `{}`)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Equal(t, "invalid id: must be an integer", testutils.DecodeJSON[shared.ErrorResponse](t, w).Error)
		})
	}

	t.Run("unknown integer ids are not found", func(t *testing.T) {
		for _, path := range []string{"/tasks/0", "/tasks/-3", "/tasks/42"} {
			w := testutils.DoRequest(t, router, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusNotFound, w.Code, path)
		}
		w := testutils.DoRequest(t, router, http.MethodPatch, "/tasks/42/complete", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		w = testutils.DoRequest(t, router, http.MethodDelete, "/tasks/42", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTaskHandler_CompleteIsIdempotent(t *testing.T) {
	router := newTestRouter(newTestHandler(t))
	testutils.DoRequest(t, router, http.MethodPost, "/tasks", map[string]string{"title": "Buy milk"})

	for i := 0; i < 2; i++ {
		w := testutils.DoRequest(t, router, http.MethodPatch, "/tasks/1/complete", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "completed", testutils.DecodeJSON[TaskResponse](t, w).Status)
	}
}

func TestTaskHandler_FilterTasks(t *testing.T) {
	router := newTestRouter(newTestHandler(t))
	testutils.DoRequest(t, router, http.MethodPost, "/tasks", map[string]string{"title": "a"})
	testutils.DoRequest(t, router, http.MethodPost, "/tasks", map[string]string{"title": "b", "status": "completed"})
	testutils.DoRequest(t, router, http.MethodPost, "/tasks", map[string]string{"title": "c"})

	tests := []struct {
		query          string
		expectedStatus int
		expectedIDs    []int64
	}{
		{"status=pending", http.StatusOK, []int64{1, 3}},
		{"status=completed", http.StatusOK, []int64{2}},
		{"status=Completed", http.StatusUnprocessableEntity, nil},
		{"status=done", http.StatusUnprocessableEntity, nil},
		{"status=", http.StatusUnprocessableEntity, nil},
		{"", http.StatusUnprocessableEntity, nil},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			w := testutils.DoRequest(t, router, http.MethodGet, "/tasks/filter?"+tc.query, nil)
			require.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectedStatus != http.StatusOK {
				return
			}
			ids := make([]int64, 0)
			for _, task := range testutils.DecodeJSON[[]TaskResponse](t, w) {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tc.expectedIDs, ids)
		})
	}
}

func TestTaskHandler_SearchTasks(t *testing.T) {
	router := newTestRouter(newTestHandler(t))
	testutils.DoRequest(t, router, http.MethodPost, "/tasks", map[string]string{"title": "Buy groceries"})
	testutils.DoRequest(t, router, http.MethodPost, "/tasks", map[string]string{"title": "Clean house"})
	testutils.DoRequest(t, router, http.MethodPost, "/tasks", map[string]string{"title": "buy stamps"})

	tests := []struct {
		query       string
		expectedIDs []int64
	}{
		{"title=buy", []int64{1, 3}},
		{"title=GROC", []int64{1}},
		{"title=", []int64{1, 2, 3}},
		{"", []int64{1, 2, 3}},
		{"title=garden", []int64{}},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			w := testutils.DoRequest(t, router, http.MethodGet, "/tasks/search?"+tc.query, nil)
			require.Equal(t, http.StatusOK, w.Code)
			ids := make([]int64, 0)
			for _, task := range testutils.DecodeJSON[[]TaskResponse](t, w) {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tc.expectedIDs, ids)
		})
	}
}

func TestTaskHandler_Report(t *testing.T) {
	router := newTestRouter(newTestHandler(t))
	testutils.DoRequest(t, router, http.MethodPost, "/tasks", map[string]string{"title": "Buy milk"})

	w := testutils.DoRequest(t, router, http.MethodGet, "/tasks/report", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "tasks-report.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

// insertAfterListService adds a task right after every ListTasks read,
// standing in for a concurrent request.
type insertAfterListService struct {
	service.TaskService
}

func (s *insertAfterListService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.TaskService.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.TaskService.CreateTask(ctx, service.CreateTaskInput{Title: "Late arrival"}); err != nil {
		return nil, err
	}
	return tasks, nil
}

func TestTaskHandler_ReportSummaryMatchesRows(t *testing.T) {
	base := newTestHandler(t)
	_, err := base.taskService.CreateTask(context.Background(), service.CreateTaskInput{Title: "Buy milk"})
	require.NoError(t, err)

	h := NewTaskHandler(&insertAfterListService{TaskService: base.taskService}, nil)
	var gotRows []*domain.Task
	var gotSummary domain.Summary
	h.buildReport = func(tasks []*domain.Task, summary domain.Summary, generatedAt time.Time) ([]byte, error) {
		gotRows, gotSummary = tasks, summary
		return []byte("%PDF-1.3"), nil
	}

	w := testutils.DoRequest(t, newTestRouter(h), http.MethodGet, "/tasks/report", nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, gotRows, 1)
	assert.Equal(t, domain.Summary{Total: 1, Pending: 1}, gotSummary)

	// The late task landed in the store but not in this report.
	all, err := base.taskService.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTaskHandler_InternalErrors(t *testing.T) {
	svc := &mocks.MockTaskService{DefaultError: errors.New("dial postgres://admin:pw@db: refused")}
	router := newTestRouter(NewTaskHandler(svc, nil))

	tests := []struct {
		method          string
		path            string
		expectedMessage string
	}{
		{http.MethodGet, "/tasks", "Failed to list tasks"},
		{http.MethodGet, "/tasks/summary", "Failed to summarize tasks"},
		{http.MethodDelete, "/tasks", "Failed to delete tasks"},
		{http.MethodGet, "/tasks/report", "Failed to build report"},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := testutils.DoRequest(t, router, tc.method, tc.path, nil)
			require.Equal(t, http.StatusInternalServerError, w.Code)

			errResp := testutils.DecodeJSON[shared.ErrorResponse](t, w)
			assert.Equal(t, tc.expectedMessage, errResp.Error)
			assert.NotContains(t, w.Body.String(), "postgres")
		})
	}
}
