package store

import (
	"context"

	"github.com/MKhiriev/go-session-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/user_repository_mock.go -package=mock

// UserRepository is the narrow read/write contract over the credential
// store. No other component reads or writes user rows directly.
type UserRepository interface {
	// CreateUser persists a new user record and returns it with
	// server-assigned fields populated (ID, Role, CreatedAt).
	// Returns [ErrEmailAlreadyExists] on an email uniqueness violation.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail retrieves the user whose email matches exactly.
	// Returns [ErrNoUserWasFound] when no such user exists.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID retrieves the user with the given primary id.
	// Returns [ErrNoUserWasFound] when no such user exists.
	FindUserByID(ctx context.Context, id string) (models.User, error)

	// UpdatePasswordHash overwrites the stored password hash of the user
	// with the given id. Returns [ErrNothingWasUpdated] when the id does
	// not match any row.
	UpdatePasswordHash(ctx context.Context, id string, hash string) error
}
