package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Products are never mutated once loaded.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	Position    int             `json:"-"`
	CreatedAt   time.Time       `json:"-"`
}

// ValidProductID reports whether id can be used as a single URL path
// segment: letters, digits and "-", "_", ".", "~" only.
func ValidProductID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.', r == '~':
		default:
			return false
		}
	}
	return true
}
