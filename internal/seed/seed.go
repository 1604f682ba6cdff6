package seed

import (
	"context"
	"fmt"

	"tomato-harvest/internal/catalog"
	"tomato-harvest/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// Apply upserts the built-in tomato varieties. It is idempotent.
func Apply(ctx context.Context, repo ProductWriter) (int, error) {
	products := catalog.DefaultProducts()
	for _, p := range products {
		if _, err := repo.Upsert(ctx, p); err != nil {
			return 0, fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
	}
	return len(products), nil
}
