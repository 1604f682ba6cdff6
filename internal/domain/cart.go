package domain

import "github.com/shopspring/decimal"

// CartLine is one product in a cart. ID equals the product id and Price is the
// catalog price captured when the product was first added.
type CartLine struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	ImageURL string          `json:"imageUrl"`
}

// LineTotal returns price × quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartSnapshot is a read-only copy of a cart handed to views and API clients.
type CartSnapshot struct {
	Lines     []CartLine      `json:"lines"`
	LineCount int             `json:"lineCount"`
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Total     decimal.Decimal `json:"total"`
}

// IsEmpty reports whether the snapshot has no lines.
func (s CartSnapshot) IsEmpty() bool {
	return len(s.Lines) == 0
}
