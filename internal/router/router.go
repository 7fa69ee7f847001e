// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and the global error handler and maps
// every path to its handler. Anything left unmatched falls through to
// the error handler as "Route not found".
package router

import (
	"github.com/deppfellow/bfhl/internal/handler"
	"github.com/deppfellow/bfhl/internal/middleware"
	"github.com/deppfellow/bfhl/internal/server"
	"github.com/deppfellow/bfhl/internal/validation"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance serving the whole API.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler
	router.JSONSerializer = validation.StrictJSONSerializer{}

	// Order matters:
	//   - the request id must exist before the context logger is built
	//   - the New Relic transaction must exist before trace ids are read
	//   - Recover sits inside the logger so a panic is logged as a 500
	//   - body limit and rate limit reject before any binding happens
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
		middlewares.Global.BodyLimit(),
		middlewares.RateLimit.Limit(),
	)

	registerSystemRoutes(router, s, h)
	registerBFHLRoutes(router, h)

	return router
}
