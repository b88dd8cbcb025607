package service

import (
	"fmt"

	"github.com/deppfellow/taskform/internal/i18n"
	"github.com/deppfellow/taskform/internal/lib/job"
	"github.com/deppfellow/taskform/internal/repository"
	"github.com/deppfellow/taskform/internal/server"
	"github.com/deppfellow/taskform/internal/validation"
)

type Services struct {
	Auth *AuthService
	Job  *job.JobService
	Task *TaskService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	messages, err := i18n.NewMessages(s.Config.App.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to load validation messages: %w", err)
	}

	s.Logger.Debug().Str("locale", messages.Locale()).Msg("loaded validation messages")

	var notifier TaskNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Auth: NewAuthService(s),
		Job:  s.Job,
		Task: NewTaskService(s, validation.New(messages), repos.Task, notifier),
	}, nil
}
