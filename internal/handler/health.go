package handler

import (
	"net/http"

	"github.com/deppfellow/bfhl/internal/middleware"
	"github.com/deppfellow/bfhl/internal/model"
	"github.com/deppfellow/bfhl/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler serves the liveness endpoint used by uptime monitors and
// load balancers.
//
// The service has no backing stores, so being able to answer is the only
// check.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler with access to shared app dependencies.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth returns 200 with a successful envelope and no data.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	middleware.GetLogger(c).Debug().
		Str("operation", "health_check").
		Msg("health check passed")

	return c.JSON(http.StatusOK, model.Success(h.server.Config.Identity.OfficialEmail, nil))
}
