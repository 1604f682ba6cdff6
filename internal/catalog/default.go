package catalog

import (
	"tomato-harvest/internal/domain"

	"github.com/shopspring/decimal"
)

// DefaultProducts is the built-in list of featured varieties.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Name:        "Heirloom Tomatoes",
			Description: "Juicy, colorful heirloom tomatoes grown using traditional methods. Perfect for salads and fresh eating.",
			Price:       decimal.RequireFromString("4.99"),
			ImageURL:    "https://images.unsplash.com/photo-1582284540020-8acbe03f4924?auto=format&fit=crop&q=80&w=500",
			Position:    1,
		},
		{
			ID:          "2",
			Name:        "Roma Tomatoes",
			Description: "Firm, meaty Roma tomatoes ideal for sauces, canning, and cooking. Rich in flavor with few seeds.",
			Price:       decimal.RequireFromString("3.49"),
			ImageURL:    "https://images.unsplash.com/photo-1598511796432-32663d0875f2?auto=format&fit=crop&q=80&w=500",
			Position:    2,
		},
		{
			ID:          "3",
			Name:        "Cherry Tomatoes",
			Description: "Sweet, bite-sized cherry tomatoes bursting with flavor. Great for snacking and quick recipes.",
			Price:       decimal.RequireFromString("3.99"),
			ImageURL:    "https://images.unsplash.com/photo-1546094096-0df4bcaaa337?auto=format&fit=crop&q=80&w=500",
			Position:    3,
		},
		{
			ID:          "4",
			Name:        "Beefsteak Tomatoes",
			Description: "Large, juicy beefsteak tomatoes perfect for sandwiches and burgers. Full-bodied tomato flavor.",
			Price:       decimal.RequireFromString("5.49"),
			ImageURL:    "https://images.unsplash.com/photo-1592841200221-a6c4c3aee211?auto=format&fit=crop&q=80&w=500",
			Position:    4,
		},
	}
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(DefaultProducts())
	if err != nil {
		panic(err)
	}
	return c
}
