package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-todo-offline/internal/config"
	"github.com/MKhiriev/go-todo-offline/internal/logger"
	"github.com/MKhiriev/go-todo-offline/migrations"
)

// ErrorClassificator decides whether a failed database operation may succeed
// when attempted again.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// DB is a database handle together with the dialect specifics the
// repositories need: placeholder format, migration tree and error classifier.
type DB struct {
	*sql.DB
	dialect            string
	placeholder        sq.PlaceholderFormat
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens the database described by cfg.DSN: a postgres:// or
// postgresql:// URL selects PostgreSQL, anything else is a SQLite file path.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, ErrUnsupportedDSN
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return NewConnectPostgres(ctx, cfg, log)
	}

	return NewConnectSQLite(ctx, cfg, log)
}

// Migrate applies the embedded migrations of the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

func (db *DB) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.placeholder)
}

// classify wraps err with [ErrTransient] when the dialect's classifier
// considers it retryable.
func (db *DB) classify(err error) error {
	if err == nil || db.errorClassificator == nil {
		return err
	}

	if db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrTransient, err)
	}

	return err
}
