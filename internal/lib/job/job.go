// Package job runs background work on asynq, backed by Redis.
package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/taskform/internal/config"
	"github.com/deppfellow/taskform/internal/model"
)

type JobService struct {
	Client *asynq.Client

	server *asynq.Server
	logger *zerolog.Logger
	mailer mailer
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		logger: logger,
	}
}

// Start registers handlers and starts the worker. It does not block.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskCreatedEmail, j.handleTaskCreatedEmailTask)

	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(mux); err != nil {
		return fmt.Errorf("failed to start job server: %w", err)
	}
	return nil
}

func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}

// EnqueueTaskCreated schedules the confirmation email for task.
func (j *JobService) EnqueueTaskCreated(ctx context.Context, task *model.Task) error {
	t, err := NewTaskCreatedEmailTask(task)
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, t)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", TaskCreatedEmail, err)
	}

	j.logger.Debug().
		Str("job_id", info.ID).
		Str("queue", info.Queue).
		Str("task_id", task.ID.String()).
		Msg("enqueued task confirmation email")

	return nil
}
