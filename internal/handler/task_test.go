package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/taskform/internal/config"
	"github.com/deppfellow/taskform/internal/errs"
	"github.com/deppfellow/taskform/internal/i18n"
	"github.com/deppfellow/taskform/internal/middleware"
	"github.com/deppfellow/taskform/internal/model"
	"github.com/deppfellow/taskform/internal/server"
	"github.com/deppfellow/taskform/internal/service"
	"github.com/deppfellow/taskform/internal/validation"
)

type memoryStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*model.Task
}

func newMemoryStore() *memoryStore {
	return &memoryStore{tasks: make(map[uuid.UUID]*model.Task)}
}

func (m *memoryStore) Create(_ context.Context, task *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	task.ID = uuid.New()
	task.CreatedAt = time.Now().UTC()
	m.tasks[task.ID] = task
	return nil
}

func (m *memoryStore) GetByID(_ context.Context, id uuid.UUID) (*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok {
		code := "TASK_NOT_FOUND"
		return nil, errs.NewNotFoundError("task not found", true, &code)
	}
	return task, nil
}

func (m *memoryStore) List(_ context.Context, limit, offset int) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, *t)
	}
	return out, nil
}

func (m *memoryStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func newTestRouter(t *testing.T) (*echo.Echo, *memoryStore) {
	t.Helper()

	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{App: config.AppConfig{Locale: i18n.LocaleEnglish}},
		Logger: &logger,
	}

	messages, err := i18n.NewMessages(i18n.LocaleEnglish)
	require.NoError(t, err)

	store := newMemoryStore()
	h := NewTaskHandler(s, service.NewTaskService(s, validation.New(messages), store, nil))

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler

	g := e.Group("/api/v1/tasks")
	g.POST("", Handle(h.Handler, h.CreateTask, http.StatusCreated, &CreateTaskRequest{}))
	g.POST("/validate", Handle(h.Handler, h.ValidateTask, http.StatusOK, &CreateTaskRequest{}))
	g.GET("", Handle(h.Handler, h.ListTasks, http.StatusOK, &ListTasksRequest{}))
	g.GET("/:id", Handle(h.Handler, h.GetTask, http.StatusOK, &GetTaskRequest{}))

	return e, store
}

func postForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestCreateTask_FormAccepted(t *testing.T) {
	e, store := newTestRouter(t)

	rec := postForm(e, "/api/v1/tasks", url.Values{
		"title":       {"Buy groceries"},
		"description": {"milk and bread"},
		"email":       {"user@example.com"},
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var task model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	assert.NotEqual(t, uuid.Nil, task.ID)
	assert.Equal(t, "Buy groceries", task.Title)
	assert.Equal(t, "milk and bread", task.Description)
	assert.Equal(t, 1, store.count())
}

func TestCreateTask_JSONRejected(t *testing.T) {
	e, store := newTestRouter(t)

	rec := postJSON(e, "/api/v1/tasks", `{"title":"Task1","email":"not-an-email"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, errs.CodeValidationFailed, body.Code)
	assert.Equal(t, map[string]string{
		"title": "Title must contain only letters and spaces",
		"email": "Email must be a string in a valid format",
	}, body.FieldErrorMap())
	assert.Zero(t, store.count())
}

func TestCreateTask_MissingFieldsAreEmpty(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := postForm(e, "/api/v1/tasks", url.Values{})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.FieldErrorMap(), "title")
	assert.Contains(t, body.FieldErrorMap(), "email")
	assert.NotContains(t, body.FieldErrorMap(), "description")
}

func TestValidateTask_DryRun(t *testing.T) {
	e, store := newTestRouter(t)

	rec := postForm(e, "/api/v1/tasks/validate", url.Values{
		"title": {"Ok"},
		"email": {"bad"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"valid":false,"errors":{"email":"Email must be a string in a valid format"}}`, rec.Body.String())

	rec = postJSON(e, "/api/v1/tasks/validate", `{"title":"Ok","email":"user@example.com"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"valid":true,"errors":{}}`, rec.Body.String())
	assert.Zero(t, store.count())
}

func TestGetTask(t *testing.T) {
	e, _ := newTestRouter(t)

	created := postJSON(e, "/api/v1/tasks", `{"title":"Ok","email":"user@example.com"}`)
	require.Equal(t, http.StatusCreated, created.Code)

	var task model.Task
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &task))

	t.Run("found", func(t *testing.T) {
		rec := get(e, "/api/v1/tasks/"+task.ID.String())
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), task.ID.String())
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := get(e, "/api/v1/tasks/"+uuid.NewString())
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := get(e, "/api/v1/tasks/42")
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var body errs.HTTPError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "must be a valid UUID", body.FieldErrorMap()["id"])
	})
}

func TestListTasks(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := get(e, "/api/v1/tasks")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())

	rec = get(e, "/api/v1/tasks?limit=-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_FreshRequestPerCall(t *testing.T) {
	proto := &CreateTaskRequest{Title: "stale"}

	first := newRequest(proto)
	second := newRequest(proto)

	assert.NotSame(t, proto, first)
	assert.NotSame(t, first, second)
	assert.Equal(t, &CreateTaskRequest{}, first)
}
