package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/models"
)

// userRepository is the SQL-backed implementation of [UserRepository].
// It handles user account creation, lookup, and password hash updates
// against the "users" table, on either the PostgreSQL or SQLite backend.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// userColumns is the canonical column order scanned by scanUser.
var userColumns = []string{"id", "name", "email", "hash", "role", "created_at"}

// CreateUser persists a new user record and returns the fully populated
// [models.User]. The primary id is assigned application-side (uuid) so the
// same INSERT works on both backends, and the inserted row is re-read to
// pick up database-assigned defaults (role, created_at).
//
// Error handling:
//   - backend uniqueness violation on email → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.ID = uuid.NewString()
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	query, args, err := sq.Insert("users").
		Columns("id", "name", "email", "hash", "role").
		Values(user.ID, nullableString(user.Name), user.Email, user.Hash, string(user.Role)).
		PlaceholderFormat(r.db.placeholder).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: building insert query")
		return models.User{}, fmt.Errorf("error building sql query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("email", user.Email).Msg("user insert failed")

		if r.db.errors.IsUniqueViolation(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return r.FindUserByID(ctx, user.ID)
}

// FindUserByEmail retrieves the user record whose email matches exactly.
//
// Error handling:
//   - empty result set → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUserWhere(ctx, sq.Eq{"email": email})
}

// FindUserByID retrieves the user record with the given primary id.
//
// Error handling mirrors [userRepository.FindUserByEmail].
func (r *userRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	return r.findUserWhere(ctx, sq.Eq{"id": id})
}

func (r *userRepository) findUserWhere(ctx context.Context, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select(userColumns...).
		From("users").
		Where(where).
		PlaceholderFormat(r.db.placeholder).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findUserWhere").Msg("error: building select query")
		return models.User{}, fmt.Errorf("error building sql query: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	foundUser, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.findUserWhere").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return foundUser, nil
}

// UpdatePasswordHash overwrites the stored password hash of the user with
// the given id.
//
// Error handling:
//   - zero affected rows → [ErrNothingWasUpdated].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) UpdatePasswordHash(ctx context.Context, id string, hash string) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.Update("users").
		Set("hash", hash).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(r.db.placeholder).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePasswordHash").Msg("error: building update query")
		return fmt.Errorf("error building sql query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePasswordHash").Str("id", id).Msg("password hash update failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrNothingWasUpdated
	}

	return nil
}

// scanUser scans a single user row in userColumns order.
func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	var name sql.NullString
	var role string
	var createdAt time.Time

	if err := row.Scan(&user.ID, &name, &user.Email, &user.Hash, &role, &createdAt); err != nil {
		return models.User{}, err
	}

	user.Name = name.String
	user.Role = models.Role(role)
	user.CreatedAt = createdAt

	return user, nil
}

// nullableString maps an empty string to SQL NULL for nullable columns.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
