package middleware

import (
	"net/http"

	"github.com/deppfellow/bfhl/internal/errs"
	"github.com/deppfellow/bfhl/internal/model"
	"github.com/deppfellow/bfhl/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups "global" middleware and the global error handler.
//
// The struct gives every middleware access to shared app dependencies
// from *server.Server, especially config and logging.
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares constructs the middleware bundle.
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware configured by the server config.
//
// The API is called from browser-based graders, so the default allows
// every origin.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, RequestIDHeader},
	})
}

// BodyLimit rejects bodies larger than server.body_limit with 413.
func (global *GlobalMiddlewares) BodyLimit() echo.MiddlewareFunc {
	return middleware.BodyLimit(global.server.Config.Server.BodyLimit)
}

// RequestLogger returns Echo's request logger middleware with a custom
// LogValuesFunc that writes one structured "API" line per request.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			// When a handler returns an error the response has not been
			// written yet; derive the status the error handler will use.
			// See https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			statusCode := v.Status
			if v.Error != nil {
				statusCode = resolve(v.Error).status
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover returns Echo's panic recovery middleware.
//
// A recovered panic is handed to GlobalErrorHandler and becomes a 500.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisablePrintStack: true,
	})
}

// Secure returns Echo's secure headers middleware.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// resolved is the client-facing view of an error.
type resolved struct {
	status  int
	code    string
	message string
}

// resolve maps any error onto the status and message the client sees.
//
//   - *errs.HTTPError keeps its status; a 5xx never leaks its message.
//   - echo's 404 and 405 both become "Route not found".
//   - echo's 413 and 429 get the API's own messages.
//   - everything else is an opaque 500.
func resolve(err error) resolved {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Status >= http.StatusInternalServerError {
			httpErr = errs.NewInternalServerError()
		}
		return resolved{httpErr.Status, httpErr.Code, httpErr.Message}
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		switch echoErr.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			httpErr = errs.NewNotFoundError(errs.MessageRouteNotFound, nil)
		case http.StatusRequestEntityTooLarge:
			httpErr = errs.NewPayloadTooLargeError()
		case http.StatusTooManyRequests:
			httpErr = errs.NewTooManyRequestsError()
		default:
			if echoErr.Code >= http.StatusBadRequest && echoErr.Code < http.StatusInternalServerError {
				return resolved{
					status:  echoErr.Code,
					code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
					message: http.StatusText(echoErr.Code),
				}
			}
			httpErr = errs.NewInternalServerError()
		}
		return resolved{httpErr.Status, httpErr.Code, httpErr.Message}
	}

	httpErr = errs.NewInternalServerError()
	return resolved{httpErr.Status, httpErr.Code, httpErr.Message}
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// Every error returned by a handler or middleware ends up here and is
// written as a failure envelope. The original error is logged; only the
// resolved message reaches the client.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	r := resolve(err)

	logger := GetLogger(c)

	var e *zerolog.Event
	if r.status >= http.StatusInternalServerError {
		e = logger.Error().Stack()

		if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
		}
	} else {
		e = logger.Warn()
	}

	e.Err(err).
		Int("status", r.status).
		Str("error_code", r.code).
		Msg(r.message)

	if c.Response().Committed {
		return
	}

	envelope := model.Failure(global.server.Config.Identity.OfficialEmail, r.message)

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(r.status)
	} else {
		err = c.JSON(r.status, envelope)
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to write error response")
	}
}
