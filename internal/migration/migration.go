package migration

import (
	"context"

	"sukuyo/adapters/catalog"
	"sukuyo/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner creates the catalog schema and seeds it. The SQL is kept
// to the subset Postgres and SQLite share.
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in order. It is safe to run twice.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createShukuDetailsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create shuku_details table")
	}

	if err := r.seedShukuDetails(ctx, db); err != nil {
		return errors.Wrap(err, "failed to seed shuku_details")
	}

	return nil
}

func (r *MigrationRunner) createShukuDetailsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS shuku_details (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			reading TEXT NOT NULL,
			range_start DOUBLE PRECISION NOT NULL,
			range_end DOUBLE PRECISION NOT NULL,
			personality TEXT NOT NULL DEFAULT '',
			fortune TEXT NOT NULL DEFAULT '',
			vocation TEXT NOT NULL DEFAULT '',
			traits TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			star_shape TEXT NOT NULL DEFAULT ''
		)
	`)
	return err
}

// seedShukuDetails inserts the embedded catalog. Rows that already exist are
// left alone so operators can edit the prose in place.
func (r *MigrationRunner) seedShukuDetails(ctx context.Context, db *sqlx.DB) error {
	records, err := catalog.Records()
	if err != nil {
		return err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, rec := range records {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO shuku_details
				(id, name, reading, range_start, range_end, personality, fortune, vocation, traits, category, star_shape)
			VALUES
				(:id, :name, :reading, :range_start, :range_end, :personality, :fortune, :vocation, :traits, :category, :star_shape)
			ON CONFLICT (id) DO NOTHING
		`, rec)
		if err != nil {
			return errors.Wrapf(err, "failed to insert shuku %d", rec.ID)
		}
	}

	return tx.Commit()
}
