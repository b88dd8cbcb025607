package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/taskform/internal/config"
	"github.com/deppfellow/taskform/internal/errs"
	"github.com/deppfellow/taskform/internal/handler"
	"github.com/deppfellow/taskform/internal/i18n"
	"github.com/deppfellow/taskform/internal/middleware"
	"github.com/deppfellow/taskform/internal/model"
	"github.com/deppfellow/taskform/internal/server"
	"github.com/deppfellow/taskform/internal/service"
	"github.com/deppfellow/taskform/internal/validation"
)

const testOrigin = "https://tasks.example.com"

type sliceStore struct {
	tasks []model.Task
}

func (s *sliceStore) Create(_ context.Context, task *model.Task) error {
	task.ID = uuid.New()
	task.CreatedAt = time.Now().UTC()
	s.tasks = append(s.tasks, *task)
	return nil
}

func (s *sliceStore) GetByID(_ context.Context, id uuid.UUID) (*model.Task, error) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return &s.tasks[i], nil
		}
	}
	return nil, errs.NewNotFoundError("Task not found", true, nil)
}

func (s *sliceStore) List(_ context.Context, limit, offset int) ([]model.Task, error) {
	return s.tasks, nil
}

func newTestRouter(t *testing.T, secretKey string) *echo.Echo {
	t.Helper()

	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Server: config.ServerConfig{
				RateLimit:          5,
				CORSAllowedOrigins: []string{testOrigin},
			},
			Auth: config.AuthConfig{SecretKey: secretKey},
			App:  config.AppConfig{Locale: i18n.LocaleEnglish},
		},
		Logger: &logger,
	}

	messages, err := i18n.NewMessages(i18n.LocaleEnglish)
	require.NoError(t, err)

	services := &service.Services{
		Auth: service.NewAuthService(s),
		Task: service.NewTaskService(s, validation.New(messages), &sliceStore{}, nil),
	}

	return NewRouter(s, handler.NewHandlers(s, services), services)
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()
	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestListTasks_RequiresSession(t *testing.T) {
	tests := []struct {
		name          string
		secretKey     string
		authorization string
		wantMessage   string
	}{
		{"auth not configured", "", "", "Authentication is not configured"},
		{"auth not configured with a token", "", "Bearer forged", "Authentication is not configured"},
		{"no token", "sk_test_router", "", "Unauthorized"},
		{"malformed token", "sk_test_router", "Bearer not-a-jwt", "Unauthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestRouter(t, tt.secretKey)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
			if tt.authorization != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.authorization)
			}
			rec := serve(e, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.wantMessage, decodeError(t, rec).Message)
		})
	}
}

func TestCreateTask_ThroughMiddlewareChain(t *testing.T) {
	e := newTestRouter(t, "")

	form := url.Values{}
	form.Set(validation.FieldTitle, "Buy groceries")
	form.Set(validation.FieldEmail, "user@example.com")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.Header.Set(echo.HeaderOrigin, testOrigin)
	rec := serve(e, req)

	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "nosniff", rec.Header().Get(echo.HeaderXContentTypeOptions))
	assert.Equal(t, testOrigin, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, middleware.RequestIDHeader, rec.Header().Get(echo.HeaderAccessControlExposeHeaders))

	var task model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	assert.Equal(t, "Buy groceries", task.Title)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/api/v1/tasks/"+task.ID.String(), nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestValidateTask_RejectedFormIsNotAnError(t *testing.T) {
	e := newTestRouter(t, "")

	form := url.Values{}
	form.Set(validation.FieldTitle, "Task1")
	form.Set(validation.FieldEmail, "user@example.com")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/validate", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := serve(e, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body handler.ValidateTaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Valid)
	assert.Equal(t, map[string]string{
		"title": "Title must contain only letters and spaces",
	}, body.Errors)
}

func TestUnknownRoute_IsJSONNotFound(t *testing.T) {
	e := newTestRouter(t, "")

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/v2/tasks", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeError(t, rec).Message)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestCORS_PreflightFromAllowedOrigin(t *testing.T) {
	e := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/tasks", nil)
	req.Header.Set(echo.HeaderOrigin, testOrigin)
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := serve(e, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, testOrigin, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowHeaders), middleware.RequestIDHeader)
}
