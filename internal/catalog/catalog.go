// Package catalog holds the read-only product list the storefront sells from.
package catalog

import (
	"fmt"
	"strings"

	"tomato-harvest/internal/domain"
)

// Catalog is an ordered, immutable set of products keyed by id.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

// New validates products and builds a Catalog preserving their order.
func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for _, p := range products {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return nil, fmt.Errorf("%w: empty id for %q", domain.ErrInvalidProduct, p.Name)
		}
		if !domain.ValidProductID(p.ID) {
			return nil, fmt.Errorf("%w: id %q has characters not allowed in a URL path", domain.ErrInvalidProduct, p.ID)
		}
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("%w: empty name for id %s", domain.ErrInvalidProduct, p.ID)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("%w: negative price for id %s", domain.ErrInvalidProduct, p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", domain.ErrInvalidProduct, p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// Lookup returns the product with the given id.
func (c *Catalog) Lookup(id string) (domain.Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[idx], true
}

// Products returns a copy of the catalog in display order.
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}
