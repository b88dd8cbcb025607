package handler

import (
	"github.com/deppfellow/taskform/internal/server"
	"github.com/deppfellow/taskform/internal/service"
)

type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Task    *TaskHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Task:    NewTaskHandler(s, services.Task),
	}
}
