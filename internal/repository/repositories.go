package repository

import (
	"github.com/deppfellow/taskform/internal/server"
)

type Repositories struct {
	Task *TaskRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Task: NewTaskRepository(s),
	}
}
