package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/deppfellow/taskform/internal/middleware"
	"github.com/deppfellow/taskform/internal/server"
)

const healthCheckTimeout = 5 * time.Second

type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth pings PostgreSQL and Redis. A failed database check makes the
// response 503; Redis only backs confirmation emails, so a Redis failure is
// reported without changing the status.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true

	dbErr := errors.New("database not configured")
	if h.server.DB != nil && h.server.DB.Pool != nil {
		dbErr = h.ping(c.Request().Context(), h.server.DB.Pool.Ping)
	}
	if !h.record(logger, checks, "database", start, dbErr) {
		isHealthy = false
	}

	if h.server.Redis != nil {
		redisStart := time.Now()
		err := h.ping(c.Request().Context(), func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
		h.record(logger, checks, "redis", redisStart, err)
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordEvent(map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) ping(parent context.Context, ping func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, healthCheckTimeout)
	defer cancel()
	return ping(ctx)
}

func (h *HealthHandler) record(logger zerolog.Logger, checks map[string]interface{}, name string, start time.Time, err error) bool {
	elapsed := time.Since(start)

	if err != nil {
		checks[name] = map[string]interface{}{
			"status":        "unhealthy",
			"response_time": elapsed.String(),
			"error":         err.Error(),
		}

		logger.Error().
			Err(err).
			Dur("response_time", elapsed).
			Msgf("%s health check failed", name)

		h.recordEvent(map[string]interface{}{
			"check_type":       name,
			"operation":        "health_check",
			"error_type":       name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
		return false
	}

	checks[name] = map[string]interface{}{
		"status":        "healthy",
		"response_time": elapsed.String(),
	}
	return true
}

func (h *HealthHandler) recordEvent(params map[string]interface{}) {
	if h.server.LoggerService != nil && h.server.LoggerService.GetApplication() != nil {
		h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", params)
	}
}
