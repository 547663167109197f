package service

import (
	"context"

	"github.com/MKhiriev/go-session-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/auth_service_mock.go -package=mock

// AuthService implements the authentication procedures that require or
// mutate caller identity. The caller's resolved identity is passed in
// explicitly by the boundary layer; the service never consults ambient
// state.
//
// Every expected failure is returned as a *models.AuthError carrying the
// form field it belongs to. Unexpected failures (store unreachable, driver
// errors) are returned as ordinary wrapped errors and must not be rendered
// on a form field.
type AuthService interface {
	// Register creates a new user account and logs it in. The caller must
	// be anonymous. Returns the created user and a bearer token for its
	// new session.
	Register(ctx context.Context, ident models.Identity, req models.RegisterRequest) (models.User, string, error)

	// Login authenticates an existing user. The caller must be anonymous.
	// Returns the user and a bearer token for its new session.
	Login(ctx context.Context, ident models.Identity, req models.LoginRequest) (models.User, string, error)

	// ChangePassword re-hashes and overwrites the caller's password after
	// verifying the current one. Existing sessions stay valid.
	ChangePassword(ctx context.Context, ident models.Identity, req models.ChangePasswordRequest) error

	// RevokeOtherSessions deletes every session of the caller except the
	// current one, after verifying the caller's password. Returns the
	// number of revoked sessions.
	RevokeOtherSessions(ctx context.Context, ident models.Identity, password string) (int, error)

	// GetUser loads the caller's user record.
	GetUser(ctx context.Context, ident models.Identity) (models.User, error)
}
