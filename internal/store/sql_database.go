package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-session-keeper/internal/config"
	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/migrations"
)

// DB wraps the standard sql.DB handle together with the backend-specific
// pieces the repositories need: the squirrel placeholder format, the goose
// migration dialect, and the error classifier that recognises driver-level
// constraint violations.
type DB struct {
	*sql.DB
	placeholder sq.PlaceholderFormat
	dialect     string
	errors      ErrorClassifier
	logger      *logger.Logger
}

// NewDB opens a connection to the credential store. The backend is selected
// from the DSN scheme: "postgres://" and "postgresql://" DSNs use the pgx
// driver, everything else is treated as an embedded SQLite database file.
func NewDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		return NewConnectPostgres(ctx, cfg, log)
	}

	return NewConnectSQLite(ctx, cfg, log)
}

// Migrate applies all embedded schema migrations using the backend's goose
// dialect.
func (db *DB) Migrate() error {
	if err := migrations.Migrate(db.DB, db.dialect); err != nil {
		return fmt.Errorf("error migrating credential store: %w", err)
	}

	return nil
}
