package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/taskform/internal/errs"
	"github.com/deppfellow/taskform/internal/server"
)

// TracingMiddleware wraps requests in New Relic transactions. Both
// middlewares pass through untouched when nrApp is nil.
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		server: s,
		nrApp:  nrApp,
	}
}

func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing tags the transaction with the matched route, the task id
// and, for rejected submissions, which fields failed. Only server errors are
// noticed; a rejected form is a normal outcome of the task API.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			txn.AddAttribute("http.route", c.Path())
			txn.AddAttribute("http.real_ip", c.RealIP())

			if requestID := GetRequestID(c); requestID != "" {
				txn.AddAttribute("request.id", requestID)
			}

			if taskID := c.Param("id"); taskID != "" {
				txn.AddAttribute("task.id", taskID)
			}

			err := next(c)

			// Set by RequireAuth, which runs inside this middleware.
			if userID := GetUserID(c); userID != "" {
				txn.AddAttribute("user.id", userID)
			}

			if err == nil {
				txn.AddAttribute("http.status_code", c.Response().Status)
				return nil
			}

			httpErr := toHTTPError(err)
			txn.AddAttribute("http.status_code", httpErr.Status)

			switch {
			case httpErr.Status >= http.StatusInternalServerError:
				txn.NoticeError(nrpkgerrors.Wrap(err))
			case httpErr.Code == errs.CodeValidationFailed:
				txn.AddAttribute("task.invalid_fields", strings.Join(fieldNames(httpErr.Errors), ","))
			}

			return err
		}
	}
}
