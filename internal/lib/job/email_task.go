package job

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/deppfellow/taskform/internal/model"
)

const (
	TaskCreatedEmail = "email:task_created"
)

type TaskCreatedEmailPayload struct {
	To          string `json:"to"`
	TaskID      string `json:"task_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func NewTaskCreatedEmailTask(task *model.Task) (*asynq.Task, error) {
	payload, err := json.Marshal(TaskCreatedEmailPayload{
		To:          task.Email,
		TaskID:      task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", TaskCreatedEmail, err)
	}

	return asynq.NewTask(
		TaskCreatedEmail,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
