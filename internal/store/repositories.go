package store

import (
	"github.com/MKhiriev/go-session-keeper/internal/logger"
)

// Repositories bundles all credential store repositories used by the
// service layer.
type Repositories struct {
	UserRepository UserRepository
}

// NewRepositories constructs all repositories on top of the given database
// connection.
func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository: NewUserRepository(db, logger),
	}
}
