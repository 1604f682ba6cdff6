package catalog

import (
	"errors"
	"testing"

	"tomato-harvest/internal/domain"

	"github.com/shopspring/decimal"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if c.Len() != 4 {
		t.Fatalf("expected 4 products, got %d", c.Len())
	}
	p, ok := c.Lookup("1")
	if !ok {
		t.Fatalf("expected product 1")
	}
	if p.Name != "Heirloom Tomatoes" || !p.Price.Equal(decimal.RequireFromString("4.99")) {
		t.Fatalf("unexpected product %+v", p)
	}
	if _, ok := c.Lookup("99"); ok {
		t.Fatalf("expected unknown id to be missing")
	}
}

func TestProductsPreservesOrderAndCopies(t *testing.T) {
	c := Default()
	list := c.Products()
	if list[0].ID != "1" || list[3].ID != "4" {
		t.Fatalf("unexpected order %+v", list)
	}
	list[0].Name = "changed"
	if p, _ := c.Lookup("1"); p.Name != "Heirloom Tomatoes" {
		t.Fatalf("catalog mutated through Products copy")
	}
}

func TestNewRejectsInvalidProducts(t *testing.T) {
	cases := map[string][]domain.Product{
		"empty id":       {{ID: " ", Name: "x"}},
		"empty name":     {{ID: "1"}},
		"negative price": {{ID: "1", Name: "x", Price: decimal.NewFromInt(-1)}},
		"duplicate id":   {{ID: "1", Name: "a"}, {ID: "1", Name: "b"}},
		"slash in id":    {{ID: "a/b", Name: "x"}},
		"query in id":    {{ID: "a?b", Name: "x"}},
		"space in id":    {{ID: "a b", Name: "x"}},
		"dot-dot id":     {{ID: "..", Name: "x"}},
	}
	for name, products := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New(products)
			if !errors.Is(err, domain.ErrInvalidProduct) {
				t.Fatalf("expected ErrInvalidProduct, got %v", err)
			}
		})
	}
}

func TestNewAllowsFreeProducts(t *testing.T) {
	c, err := New([]domain.Product{{ID: "sample", Name: "Seed packet", Price: decimal.Zero}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 product")
	}
}
