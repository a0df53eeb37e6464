package ports

import (
	"context"

	"sukuyo/models"
)

// CatalogRepository defines read access to the 27-mansion detail catalog
type CatalogRepository interface {
	// Get returns the record with the given id (1-27)
	Get(ctx context.Context, id int) (*models.ShukuDetail, error)

	// FindByName returns the record whose name matches, e.g. "婁宿"
	FindByName(ctx context.Context, name string) (*models.ShukuDetail, error)

	// List returns all records ordered by id
	List(ctx context.Context) ([]*models.ShukuDetail, error)
}
