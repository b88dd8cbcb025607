package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/deppfellow/taskform/internal/model"
	"github.com/deppfellow/taskform/internal/server"
	"github.com/deppfellow/taskform/internal/validation"
)

// TaskStore persists tasks.
type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context, limit, offset int) ([]model.Task, error)
}

// TaskNotifier schedules follow-up work for a stored task.
type TaskNotifier interface {
	EnqueueTaskCreated(ctx context.Context, task *model.Task) error
}

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type TaskService struct {
	server    *server.Server
	validator *validation.FieldValidator
	store     TaskStore
	notifier  TaskNotifier
}

// NewTaskService wires the task flow. notifier may be nil, in which case no
// confirmation email is scheduled.
func NewTaskService(s *server.Server, validator *validation.FieldValidator, store TaskStore, notifier TaskNotifier) *TaskService {
	return &TaskService{
		server:    s,
		validator: validator,
		store:     store,
		notifier:  notifier,
	}
}

// Check validates in without side effects.
func (t *TaskService) Check(in validation.Input) validation.Result {
	return t.validator.Validate(in)
}

// Create validates and stores a submission. A rejected submission returns a
// 400 *errs.HTTPError carrying one message per failing field and touches
// nothing. A failure to schedule the confirmation email is logged only.
func (t *TaskService) Create(ctx context.Context, in validation.Input) (*model.Task, error) {
	res := t.validator.Validate(in)
	if err := res.Err(); err != nil {
		kinds := make([]string, 0, len(res.Violations))
		for _, v := range res.Violations {
			kinds = append(kinds, v.Field+":"+v.Kind.String())
		}
		t.server.Logger.Info().
			Strs("violations", kinds).
			Msg("task submission rejected")

		return nil, validation.ValidationFailed(err)
	}

	task := &model.Task{
		Title:       res.Input.Title,
		Description: res.Input.Description,
		Email:       res.Input.Email,
	}
	if err := t.store.Create(ctx, task); err != nil {
		return nil, err
	}

	logger := t.server.Logger.With().Str("task_id", task.ID.String()).Logger()
	logger.Info().Msg("task created")

	if t.notifier != nil {
		if err := t.notifier.EnqueueTaskCreated(ctx, task); err != nil {
			logger.Error().Err(err).Msg("failed to schedule task confirmation email")
		}
	}

	return task, nil
}

func (t *TaskService) Get(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	return t.store.GetByID(ctx, id)
}

// List clamps limit to (0, MaxListLimit], defaulting to DefaultListLimit.
func (t *TaskService) List(ctx context.Context, limit, offset int) ([]model.Task, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return t.store.List(ctx, limit, offset)
}
