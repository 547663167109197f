package service

import (
	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/internal/session"
	"github.com/MKhiriev/go-session-keeper/internal/store"
)

// Services bundles all application services consumed by the transport
// layer.
type Services struct {
	AuthService AuthService
}

// NewServices constructs all services on top of the given repositories and
// session manager.
func NewServices(repositories *store.Repositories, sessions session.Manager, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(repositories.UserRepository, sessions, logger),
	}
}
