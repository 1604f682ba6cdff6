package catalog

import (
	"context"
	"fmt"
	"io"

	"tomato-harvest/internal/domain"
	"tomato-harvest/internal/importer"
)

// Lister is the read side of a product repository.
type Lister interface {
	List(ctx context.Context) ([]domain.Product, error)
}

// FromRepository loads the catalog once from a product repository.
func FromRepository(ctx context.Context, repo Lister) (*Catalog, error) {
	products, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: product table is empty", domain.ErrNotFound)
	}
	return New(products)
}

// FromCSV loads the catalog from a CSV file in the importer format.
func FromCSV(r io.Reader) (*Catalog, error) {
	products, err := importer.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse catalog csv: %w", err)
	}
	return New(products)
}
