package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/taskform/internal/config"
	"github.com/deppfellow/taskform/internal/lib/email"
)

type mailer interface {
	SendTaskCreatedEmail(to, taskID, title, description string) error
}

// InitHandlers wires the email client used by the job handlers.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.mailer = email.NewClient(cfg, logger)
}

func (j *JobService) handleTaskCreatedEmailTask(ctx context.Context, t *asynq.Task) error {
	var p TaskCreatedEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// A payload that cannot be decoded will never succeed.
		return fmt.Errorf("failed to unmarshal %s payload: %v: %w", TaskCreatedEmail, err, asynq.SkipRetry)
	}

	if j.mailer == nil {
		return errors.New("job handlers not initialized")
	}

	log := j.logger.With().
		Str("type", TaskCreatedEmail).
		Str("task_id", p.TaskID).
		Logger()

	log.Info().Msg("processing task confirmation email")

	if err := j.mailer.SendTaskCreatedEmail(p.To, p.TaskID, p.Title, p.Description); err != nil {
		log.Error().Err(err).Msg("failed to send task confirmation email")
		return err
	}

	log.Info().Msg("sent task confirmation email")
	return nil
}
