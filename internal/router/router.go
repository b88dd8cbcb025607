// Package router builds the echo instance: global middleware, system routes
// and the versioned task API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/taskform/internal/handler"
	"github.com/deppfellow/taskform/internal/middleware"
	"github.com/deppfellow/taskform/internal/server"
	"github.com/deppfellow/taskform/internal/service"
)

func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	if !services.Auth.Enabled() {
		s.Logger.Warn().Msg("auth secret key is not set, task listing will reject every request")
	}

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	registerTaskRoutes(v1, h, middlewares)

	return router
}
