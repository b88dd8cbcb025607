package middleware

import (
	"math"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/deppfellow/taskform/internal/errs"
	"github.com/deppfellow/taskform/internal/server"
)

// RateLimitMiddleware throttles submissions per client ip using an
// in-memory token bucket sized from server.rate_limit.
type RateLimitMiddleware struct {
	server *server.Server
	store  middleware.RateLimiterStore
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	limit := s.Config.Server.RateLimit
	return &RateLimitMiddleware{
		server: s,
		store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(limit),
			Burst:     int(math.Ceil(limit)),
			ExpiresIn: 3 * time.Minute,
		}),
	}
}

func (r *RateLimitMiddleware) Limiter() echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: r.store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewForbiddenError("Unable to identify client", false)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())

			GetLogger(c).Warn().
				Str("client", identifier).
				Msg("rate limit exceeded")

			return errs.NewTooManyRequestsError("Too many requests, slow down")
		},
	})
}

// RecordRateLimitHit emits a RateLimitHit custom event when New Relic is
// enabled.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
