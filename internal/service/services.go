package service

import (
	"github.com/deppfellow/bfhl/internal/server"
)

// Services groups every service the handlers depend on.
type Services struct {
	BFHL *BFHLService
}

// NewServices wires the services from the application container.
func NewServices(s *server.Server) (*Services, error) {
	return &Services{
		BFHL: NewBFHLService(s.Answerer, s.Metrics),
	}, nil
}
