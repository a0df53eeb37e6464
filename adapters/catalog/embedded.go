// Package catalog serves the 27-mansion detail records from data embedded
// in the binary.
package catalog

import (
	"context"
	_ "embed"
	"fmt"

	"sukuyo/internal/errors"
	"sukuyo/models"
	"sukuyo/ports"

	"gopkg.in/yaml.v3"
)

//go:embed shuku_data.yaml
var shukuData []byte

type document struct {
	Shuku []*models.ShukuDetail `yaml:"shuku"`
}

// Embedded is an in-memory CatalogRepository
type Embedded struct {
	records []*models.ShukuDetail
	byName  map[string]*models.ShukuDetail
}

// NewEmbedded parses the embedded catalog
func NewEmbedded() (*Embedded, error) {
	records, err := Records()
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*models.ShukuDetail, len(records))
	for _, r := range records {
		byName[r.Name] = r
	}
	return &Embedded{records: records, byName: byName}, nil
}

var _ ports.CatalogRepository = (*Embedded)(nil)

// Records decodes the embedded catalog. Each call returns fresh copies, so
// callers may modify them.
func Records() ([]*models.ShukuDetail, error) {
	return Parse(shukuData)
}

// Parse decodes and validates a catalog document
func Parse(data []byte) ([]*models.ShukuDetail, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode shuku catalog")
	}
	if len(doc.Shuku) != models.ShukuCount {
		return nil, errors.ValidationError(fmt.Sprintf("shuku catalog has %d records, want %d", len(doc.Shuku), models.ShukuCount))
	}
	for i, r := range doc.Shuku {
		if r == nil || r.ID != i+1 {
			return nil, errors.ValidationError(fmt.Sprintf("shuku catalog record %d is out of order", i+1))
		}
		if r.Name == "" || r.Reading == "" {
			return nil, errors.ValidationError(fmt.Sprintf("shuku catalog record %d is missing name or reading", r.ID))
		}
	}
	return doc.Shuku, nil
}

// Get returns the record with the given id
func (e *Embedded) Get(_ context.Context, id int) (*models.ShukuDetail, error) {
	if !models.ValidShukuID(id) {
		return nil, OutOfRange(id)
	}
	return clone(e.records[id-1]), nil
}

// FindByName returns the record with the given name
func (e *Embedded) FindByName(_ context.Context, name string) (*models.ShukuDetail, error) {
	r, ok := e.byName[name]
	if !ok {
		return nil, errors.NotFound("shuku " + name)
	}
	return clone(r), nil
}

// List returns all records ordered by id
func (e *Embedded) List(_ context.Context) ([]*models.ShukuDetail, error) {
	out := make([]*models.ShukuDetail, len(e.records))
	for i, r := range e.records {
		out[i] = clone(r)
	}
	return out, nil
}

// OutOfRange is the error every catalog implementation returns for a bad id
func OutOfRange(id int) error {
	return errors.OutOfRange(fmt.Sprintf("shuku id must be between 1 and %d, got %d", models.ShukuCount, id))
}

func clone(r *models.ShukuDetail) *models.ShukuDetail {
	c := *r
	return &c
}
