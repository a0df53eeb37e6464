package postgres

import (
	"context"

	"sukuyo/internal/errors"
	"sukuyo/internal/migration"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Open connects to the catalog database and brings its schema up to date
// with m. driver is "postgres" or "sqlite3".
func Open(ctx context.Context, driver, dsn string, m migration.Migrator) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, errors.ConfigInvalid("CATALOG_DSN is required")
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to catalog database", err)
	}

	if driver == "sqlite3" {
		// every new connection to :memory: is an empty database
		db.SetMaxOpenConns(1)
	}

	if err := m.Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "catalog migration %s failed", m.Version())
	}

	return db, nil
}
