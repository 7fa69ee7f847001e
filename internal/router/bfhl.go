package router

import (
	"net/http"

	"github.com/deppfellow/bfhl/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerBFHLRoutes(r *echo.Echo, h *handler.Handlers) {
	r.POST("/bfhl", handler.Handle(
		h.BFHL.Handler,
		h.BFHL.Process,
		http.StatusOK,
		h.BFHL.NewRequest,
	))
}
