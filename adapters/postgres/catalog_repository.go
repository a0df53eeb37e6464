package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"sukuyo/adapters/catalog"
	"sukuyo/internal/errors"
	"sukuyo/models"
	"sukuyo/ports"

	"github.com/jmoiron/sqlx"
)

const shukuColumns = `id, name, reading, range_start, range_end, personality, fortune, vocation, traits, category, star_shape`

// CatalogRepositoryImpl implements CatalogRepository over sqlx. Queries are
// rebound per driver, so the same code serves PostgreSQL and SQLite.
type CatalogRepositoryImpl struct {
	db *sqlx.DB
}

// NewCatalogRepository creates a new SQL catalog repository
func NewCatalogRepository(db *sqlx.DB) ports.CatalogRepository {
	return &CatalogRepositoryImpl{db: db}
}

// Get retrieves a record by id
func (r *CatalogRepositoryImpl) Get(ctx context.Context, id int) (*models.ShukuDetail, error) {
	if !models.ValidShukuID(id) {
		return nil, catalog.OutOfRange(id)
	}

	var detail models.ShukuDetail
	err := r.db.GetContext(ctx, &detail, r.db.Rebind(`
		SELECT `+shukuColumns+`
		FROM shuku_details
		WHERE id = ?
	`), id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound(fmt.Sprintf("shuku %d", id))
		}
		return nil, errors.DatabaseError("failed to get shuku detail", err)
	}
	return &detail, nil
}

// FindByName retrieves a record by its name
func (r *CatalogRepositoryImpl) FindByName(ctx context.Context, name string) (*models.ShukuDetail, error) {
	var detail models.ShukuDetail
	err := r.db.GetContext(ctx, &detail, r.db.Rebind(`
		SELECT `+shukuColumns+`
		FROM shuku_details
		WHERE name = ?
	`), name)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("shuku " + name)
		}
		return nil, errors.DatabaseError("failed to find shuku detail", err)
	}
	return &detail, nil
}

// List retrieves all records ordered by id
func (r *CatalogRepositoryImpl) List(ctx context.Context) ([]*models.ShukuDetail, error) {
	var details []*models.ShukuDetail
	err := r.db.SelectContext(ctx, &details, `
		SELECT `+shukuColumns+`
		FROM shuku_details
		ORDER BY id
	`)
	if err != nil {
		return nil, errors.DatabaseError("failed to list shuku details", err)
	}
	return details, nil
}
