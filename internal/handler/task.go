package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/taskform/internal/errs"
	"github.com/deppfellow/taskform/internal/model"
	"github.com/deppfellow/taskform/internal/server"
	"github.com/deppfellow/taskform/internal/validation"
)

// TaskService is the part of service.TaskService the HTTP layer calls.
type TaskService interface {
	Create(ctx context.Context, in validation.Input) (*model.Task, error)
	Check(in validation.Input) validation.Result
	Get(ctx context.Context, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context, limit, offset int) ([]model.Task, error)
}

type TaskHandler struct {
	Handler
	tasks TaskService
}

func NewTaskHandler(s *server.Server, tasks TaskService) *TaskHandler {
	return &TaskHandler{
		Handler: NewHandler(s),
		tasks:   tasks,
	}
}

// CreateTaskRequest accepts a urlencoded form or a JSON body. Field checks
// belong to validation.FieldValidator, so Validate has nothing to do.
type CreateTaskRequest struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
	Email       string `form:"email" json:"email"`
}

func (r *CreateTaskRequest) Validate() error {
	return nil
}

func (r *CreateTaskRequest) Input() validation.Input {
	return validation.Input{
		Title:       r.Title,
		Description: r.Description,
		Email:       r.Email,
	}
}

type ValidateTaskResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

type GetTaskRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *GetTaskRequest) Validate() error {
	return validation.Struct(r)
}

type ListTasksRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

func (r *ListTasksRequest) Validate() error {
	return validation.Struct(r)
}

type ListTasksResponse struct {
	Data []model.Task `json:"data"`
}

func (h *TaskHandler) CreateTask(c echo.Context, req *CreateTaskRequest) (*model.Task, error) {
	return h.tasks.Create(c.Request().Context(), req.Input())
}

// ValidateTask runs the form checks without storing anything. An invalid
// submission is still a 200; the verdict is in the body.
func (h *TaskHandler) ValidateTask(c echo.Context, req *CreateTaskRequest) (*ValidateTaskResponse, error) {
	res := h.tasks.Check(req.Input())
	return &ValidateTaskResponse{Valid: res.Valid, Errors: res.Errors}, nil
}

func (h *TaskHandler) GetTask(c echo.Context, req *GetTaskRequest) (*model.Task, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, errs.NewBadRequestError("Invalid task id", true, nil, nil, nil)
	}
	return h.tasks.Get(c.Request().Context(), id)
}

func (h *TaskHandler) ListTasks(c echo.Context, req *ListTasksRequest) (*ListTasksResponse, error) {
	tasks, err := h.tasks.List(c.Request().Context(), req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	return &ListTasksResponse{Data: tasks}, nil
}
