package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/MKhiriev/go-session-keeper/internal/config"
	"github.com/MKhiriev/go-session-keeper/internal/logger"
)

// ErrorClassifier recognises well-known driver-level error conditions so the
// repositories can map them to sentinel errors without depending on a
// concrete driver.
type ErrorClassifier interface {
	IsUniqueViolation(err error) bool
}

// NewConnectPostgres opens a PostgreSQL-backed credential store via the pgx
// stdlib driver and verifies the connection with a ping.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// setup connections
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	// ping database
	err = conn.PingContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	// construct a DB struct
	db := &DB{
		DB:          conn,
		placeholder: sq.Dollar,
		dialect:     "pgx",
		errors:      postgresErrorClassifier{},
		logger:      log,
	}

	return db, nil
}

// postgresErrorClassifier implements [ErrorClassifier] for the pgx driver.
type postgresErrorClassifier struct{}

// IsUniqueViolation reports whether err carries the PostgreSQL
// unique_violation code (23505).
func (postgresErrorClassifier) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	return false
}
