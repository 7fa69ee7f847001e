package router

import (
	"net/http"

	"github.com/deppfellow/bfhl/internal/handler"
	"github.com/deppfellow/bfhl/internal/server"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the
// computation API: the health check (GET and HEAD, for probes that only
// look at the status) and, when enabled, the Prometheus scrape endpoint.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.Match([]string{http.MethodGet, http.MethodHead}, "/health", h.Health.CheckHealth)

	if s.Metrics != nil {
		r.GET(s.Config.Observability.Metrics.Path, echo.WrapHandler(s.Metrics.Handler()))
	}
}
