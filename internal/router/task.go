package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/taskform/internal/handler"
	"github.com/deppfellow/taskform/internal/middleware"
)

// registerTaskRoutes mounts the task API. Submissions are rate limited per
// client. Listing always requires a Clerk session and is refused outright
// while no secret key is configured.
func registerTaskRoutes(r *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	tasks := r.Group("/tasks")
	limiter := m.RateLimit.Limiter()

	tasks.POST("", handler.Handle(
		h.Task.Handler,
		h.Task.CreateTask,
		http.StatusCreated,
		&handler.CreateTaskRequest{},
	), limiter)

	tasks.POST("/validate", handler.Handle(
		h.Task.Handler,
		h.Task.ValidateTask,
		http.StatusOK,
		&handler.CreateTaskRequest{},
	), limiter)

	tasks.GET("", handler.Handle(
		h.Task.Handler,
		h.Task.ListTasks,
		http.StatusOK,
		&handler.ListTasksRequest{},
	), m.Auth.RequireAuth)

	tasks.GET("/:id", handler.Handle(
		h.Task.Handler,
		h.Task.GetTask,
		http.StatusOK,
		&handler.GetTaskRequest{},
	))
}
