package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/internal/session"
	"github.com/MKhiriev/go-session-keeper/internal/store"
	"github.com/MKhiriev/go-session-keeper/models"
)

const (
	// bcryptCost is the work factor for password hashing.
	bcryptCost = 10

	// minPasswordLength is the minimum accepted password length.
	minPasswordLength = 8

	// dummyHash is a valid bcrypt hash (cost 10) compared against when a
	// login targets an absent user, so that present and absent users cost
	// the same verification work. The comparison can never succeed because
	// the source password is not accepted from clients.
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// authService is the concrete implementation of [AuthService].
// It verifies and mutates user credentials through a UserRepository and
// issues/revokes session records through a session.Manager, using bcrypt
// for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// sessions creates and revokes session records on successful
	// authentication events.
	sessions session.Manager

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repository and
// session manager.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, sessions session.Manager, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		sessions:       sessions,
		logger:         logger,
	}
}

// Register creates a new user account and opens a session for it.
//
// Preconditions and failure taxonomy:
//   - caller already authenticated → CONFLICT.
//   - malformed email → BAD_REQUEST scoped to "email".
//   - password shorter than 8 characters → BAD_REQUEST scoped to "password".
//   - email already registered → CONFLICT scoped to "email".
func (a *authService) Register(ctx context.Context, ident models.Identity, req models.RegisterRequest) (models.User, string, error) {
	log := logger.FromContext(ctx)

	if ident.Authenticated() {
		return models.User{}, "", models.NewAuthError(models.CodeConflict, "", msgAlreadyLoggedIn)
	}

	if err := validateCredentials(req.Email, req.Password); err != nil {
		return models.User{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return models.User{}, "", fmt.Errorf("error hashing password: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Email: req.Email,
		Hash:  string(hash),
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			log.Warn().Str("email", req.Email).Msg("registration for existing email")
			return models.User{}, "", models.NewAuthError(models.CodeConflict, "email", msgEmailTaken)
		}
		log.Err(err).Msg("user creation ended with error")
		return models.User{}, "", fmt.Errorf("user creation ended with error: %w", err)
	}

	token, err := a.sessions.CreateSession(ctx, user.ID, req.Remember)
	if err != nil {
		log.Err(err).Str("user", user.ID).Msg("session creation after registration failed")
		return models.User{}, "", fmt.Errorf("session creation failed: %w", err)
	}

	return user, token, nil
}

// Login authenticates an existing user and opens a session for it.
//
// Preconditions and failure taxonomy:
//   - caller already authenticated → CONFLICT.
//   - no user with that email → NOT_FOUND scoped to "email".
//   - password mismatch → BAD_REQUEST scoped to "password".
//
// Verification always runs: when the email matches no user the supplied
// password is compared against a fixed dummy hash before NOT_FOUND is
// returned, so the hash work is the same for present and absent users.
func (a *authService) Login(ctx context.Context, ident models.Identity, req models.LoginRequest) (models.User, string, error) {
	log := logger.FromContext(ctx)

	if ident.Authenticated() {
		return models.User{}, "", models.NewAuthError(models.CodeConflict, "", msgAlreadyLoggedIn)
	}

	user, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(req.Password))
			return models.User{}, "", models.NewAuthError(models.CodeNotFound, "email", msgUserDoesNotExist)
		}
		log.Err(err).Msg("user search by email failed")
		return models.User{}, "", fmt.Errorf("user search by email failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(req.Password)); err != nil {
		log.Warn().Str("user", user.ID).Msg("wrong password")
		return models.User{}, "", models.NewAuthError(models.CodeBadRequest, "password", msgIncorrectPass)
	}

	token, err := a.sessions.CreateSession(ctx, user.ID, req.Remember)
	if err != nil {
		log.Err(err).Str("user", user.ID).Msg("session creation after login failed")
		return models.User{}, "", fmt.Errorf("session creation failed: %w", err)
	}

	return user, token, nil
}

// ChangePassword verifies the caller's current password and overwrites the
// stored hash with a fresh one. Existing session records are left valid:
// changing the password does not itself invalidate sessions.
//
// Preconditions and failure taxonomy:
//   - caller anonymous → UNAUTHORIZED.
//   - current password mismatch → BAD_REQUEST scoped to "currentPassword".
//   - new and confirm differ → BAD_REQUEST scoped to "confirmPassword".
//   - new password shorter than 8 characters → BAD_REQUEST scoped to
//     "newPassword".
func (a *authService) ChangePassword(ctx context.Context, ident models.Identity, req models.ChangePasswordRequest) error {
	log := logger.FromContext(ctx)

	user, err := a.requireUser(ctx, ident)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(req.CurrentPassword)); err != nil {
		return models.NewAuthError(models.CodeBadRequest, "currentPassword", msgIncorrectPass)
	}

	if req.NewPassword != req.ConfirmPassword {
		return models.NewAuthError(models.CodeBadRequest, "confirmPassword", msgPasswordMismatch)
	}

	if len(req.NewPassword) < minPasswordLength {
		return models.NewAuthError(models.CodeBadRequest, "newPassword", msgPasswordTooShort)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := a.userRepository.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		log.Err(err).Str("user", user.ID).Msg("password hash update failed")
		return fmt.Errorf("password hash update failed: %w", err)
	}

	return nil
}

// RevokeOtherSessions verifies the caller's password and deletes every
// session record of the caller except the current one.
//
// Preconditions and failure taxonomy:
//   - caller anonymous → UNAUTHORIZED.
//   - password mismatch → BAD_REQUEST scoped to "password".
func (a *authService) RevokeOtherSessions(ctx context.Context, ident models.Identity, password string) (int, error) {
	log := logger.FromContext(ctx)

	user, err := a.requireUser(ctx, ident)
	if err != nil {
		return 0, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(password)); err != nil {
		return 0, models.NewAuthError(models.CodeBadRequest, "password", msgIncorrectPass)
	}

	revoked, err := a.sessions.RevokeOtherSessions(ctx, user.ID, ident.SessionID)
	if err != nil {
		log.Err(err).Str("user", user.ID).Msg("bulk session revocation failed")
		return revoked, fmt.Errorf("bulk session revocation failed: %w", err)
	}

	return revoked, nil
}

// GetUser loads the caller's user record.
//
// Returns UNAUTHORIZED for anonymous callers and ErrUserVanished (wrapped)
// when the identity no longer maps to a user row.
func (a *authService) GetUser(ctx context.Context, ident models.Identity) (models.User, error) {
	return a.requireUser(ctx, ident)
}

// requireUser enforces the authenticated-caller precondition and resolves
// the identity to its user record. An identity whose user row has vanished
// yields ErrUserVanished so the boundary can force a logout.
func (a *authService) requireUser(ctx context.Context, ident models.Identity) (models.User, error) {
	if !ident.Authenticated() {
		return models.User{}, models.NewAuthError(models.CodeUnauthorized, "", msgMustBeLoggedIn)
	}

	user, err := a.userRepository.FindUserByID(ctx, ident.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, fmt.Errorf("%w: %s", ErrUserVanished, ident.UserID)
		}
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

// validateCredentials applies the registration input rules: a parseable
// email address and a password of at least 8 characters.
func validateCredentials(email, password string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return models.NewAuthError(models.CodeBadRequest, "email", msgInvalidEmail)
	}

	if len(password) < minPasswordLength {
		return models.NewAuthError(models.CodeBadRequest, "password", msgPasswordTooShort)
	}

	return nil
}
