package handler

import (
	"github.com/deppfellow/bfhl/internal/server"
	"github.com/deppfellow/bfhl/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
//
// Router setup receives this one object instead of every handler.
type Handlers struct {
	Health *HealthHandler // Health serves the liveness endpoint.
	BFHL   *BFHLHandler   // BFHL serves the computation endpoint.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(s),
		BFHL:   NewBFHLHandler(s, services.BFHL),
	}
}
