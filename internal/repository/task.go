package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/taskform/internal/model"
	"github.com/deppfellow/taskform/internal/server"
	"github.com/deppfellow/taskform/internal/sqlerr"
)

type TaskRepository struct {
	server *server.Server
}

func NewTaskRepository(s *server.Server) *TaskRepository {
	return &TaskRepository{server: s}
}

// Create inserts task and fills its generated ID and CreatedAt.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	const stmt = `
		INSERT INTO tasks (title, description, email)
		VALUES (@title, @description, @email)
		RETURNING id, created_at`

	err := r.server.DB.Pool.QueryRow(ctx, stmt, pgx.NamedArgs{
		"title":       task.Title,
		"description": task.Description,
		"email":       task.Email,
	}).Scan(&task.ID, &task.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	const stmt = `
		SELECT id, title, description, email, created_at
		FROM tasks
		WHERE id = @id`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to query task %s: %w", id, err)
	}

	task, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Task])
	if err != nil {
		return nil, fmt.Errorf("failed to get task %s %stasks: %w", id, sqlerr.TablePrefix, err)
	}

	return task, nil
}

// List returns tasks newest first.
func (r *TaskRepository) List(ctx context.Context, limit, offset int) ([]model.Task, error) {
	const stmt = `
		SELECT id, title, description, email, created_at
		FROM tasks
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"limit":  limit,
		"offset": offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}

	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Task])
	if err != nil {
		return nil, fmt.Errorf("failed to collect tasks: %w", err)
	}

	return tasks, nil
}
