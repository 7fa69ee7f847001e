package handler

import (
	"github.com/deppfellow/bfhl/internal/middleware"
	"github.com/deppfellow/bfhl/internal/model"
	"github.com/deppfellow/bfhl/internal/server"
	"github.com/deppfellow/bfhl/internal/service"
	"github.com/labstack/echo/v4"
)

// BFHLHandler serves POST /bfhl.
type BFHLHandler struct {
	Handler
	service *service.BFHLService
}

// NewBFHLHandler constructs a BFHLHandler.
func NewBFHLHandler(s *server.Server, bfhlService *service.BFHLService) *BFHLHandler {
	return &BFHLHandler{
		Handler: NewHandler(s),
		service: bfhlService,
	}
}

// NewRequest returns an empty request bound to the configured input limits.
func (h *BFHLHandler) NewRequest() *model.BFHLRequest {
	return model.NewBFHLRequest(model.Limits{
		MaxFibonacciTerms: h.server.Config.Compute.MaxFibonacciTerms,
		MaxArrayLength:    h.server.Config.Compute.MaxArrayLength,
	})
}

// Process dispatches the validated operation and wraps its result.
func (h *BFHLHandler) Process(c echo.Context, req *model.BFHLRequest) (model.Envelope, error) {
	op := req.Operation()
	c.Set(middleware.OperationKey, string(op.Key()))

	data, err := h.service.Execute(c.Request().Context(), op)
	if err != nil {
		return model.Envelope{}, err
	}

	return model.Success(h.server.Config.Identity.OfficialEmail, data), nil
}
