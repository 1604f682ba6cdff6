// Package cart implements the per-session shopping cart.
//
// A Store keeps its lines in insertion order, holds at most one line per
// product and never keeps a line with a quantity below one. A Store is not
// safe for concurrent use; callers serialize access.
package cart

import (
	"tomato-harvest/internal/domain"

	"github.com/shopspring/decimal"
)

// MaxQuantity is the largest quantity a single line may hold. Adds and
// increments at the bound are ignored and larger quantities are clamped.
const MaxQuantity = 9999

// Catalog resolves product ids for AddItem.
type Catalog interface {
	Lookup(id string) (domain.Product, bool)
}

type Store struct {
	catalog Catalog
	lines   []domain.CartLine
}

// New returns an empty cart backed by catalog.
func New(catalog Catalog) *Store {
	return &Store{catalog: catalog}
}

// Restore rebuilds a cart from previously saved lines. Lines with a quantity
// below one and repeated ids are dropped; quantities above MaxQuantity are
// clamped.
func Restore(catalog Catalog, lines []domain.CartLine) *Store {
	s := &Store{catalog: catalog, lines: make([]domain.CartLine, 0, len(lines))}
	for _, line := range lines {
		if line.Quantity < 1 || s.index(line.ID) >= 0 {
			continue
		}
		line.Quantity = min(line.Quantity, MaxQuantity)
		s.lines = append(s.lines, line)
	}
	return s
}

// AddItem adds one unit of the product. It reports false, and changes
// nothing, when the catalog has no such product. A line already at
// MaxQuantity is left as is.
func (s *Store) AddItem(productID string) bool {
	if s.catalog == nil {
		return false
	}
	product, ok := s.catalog.Lookup(productID)
	if !ok {
		return false
	}
	if i := s.index(productID); i >= 0 {
		s.bump(i)
		return true
	}
	s.lines = append(s.lines, domain.CartLine{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Quantity: 1,
		ImageURL: product.ImageURL,
	})
	return true
}

// RemoveItem drops the line if present.
func (s *Store) RemoveItem(lineID string) {
	i := s.index(lineID)
	if i < 0 {
		return
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line and one above MaxQuantity is clamped to it.
func (s *Store) UpdateQuantity(lineID string, quantity int) {
	i := s.index(lineID)
	if i < 0 {
		return
	}
	if quantity <= 0 {
		s.RemoveItem(lineID)
		return
	}
	s.lines[i].Quantity = min(quantity, MaxQuantity)
}

// Increment adds one unit to an existing line, up to MaxQuantity.
func (s *Store) Increment(lineID string) {
	if i := s.index(lineID); i >= 0 {
		s.bump(i)
	}
}

func (s *Store) bump(i int) {
	if s.lines[i].Quantity < MaxQuantity {
		s.lines[i].Quantity++
	}
}

// Decrement removes one unit but never takes a line below one.
func (s *Store) Decrement(lineID string) {
	if i := s.index(lineID); i >= 0 && s.lines[i].Quantity > 1 {
		s.lines[i].Quantity--
	}
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.lines = nil
}

// ItemCount returns the sum of quantities.
func (s *Store) ItemCount() int {
	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// Total returns the sum of price × quantity over all lines.
func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// Subtotal equals Total; there is no tax, shipping or discount model.
func (s *Store) Subtotal() decimal.Decimal {
	return s.Total()
}

// Len returns the number of distinct lines.
func (s *Store) Len() int {
	return len(s.lines)
}

// Lines returns a copy of the lines in insertion order.
func (s *Store) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Line returns the line with the given id.
func (s *Store) Line(lineID string) (domain.CartLine, bool) {
	i := s.index(lineID)
	if i < 0 {
		return domain.CartLine{}, false
	}
	return s.lines[i], true
}

// Snapshot returns a read-only view of the cart.
func (s *Store) Snapshot() domain.CartSnapshot {
	total := s.Total()
	return domain.CartSnapshot{
		Lines:     s.Lines(),
		LineCount: s.Len(),
		ItemCount: s.ItemCount(),
		Subtotal:  total,
		Total:     total,
	}
}

func (s *Store) index(id string) int {
	for i := range s.lines {
		if s.lines[i].ID == id {
			return i
		}
	}
	return -1
}
