// Package view builds the view models of the storefront page and renders them
// with html/template.
package view

import (
	"strconv"

	"tomato-harvest/internal/domain"
)

const (
	BrandName    = "Tomato Harvest"
	HeroImageURL = "https://images.unsplash.com/photo-1592924357228-91a4daadcfea?auto=format&fit=crop&q=80&w=1200"
)

type NavLink struct {
	Label string
	Href  string
}

// NavBar is the top navigation. The cart badge is hidden when the cart holds
// no items.
type NavBar struct {
	Brand     string
	Links     []NavLink
	CartCount int
}

func (n NavBar) ShowBadge() bool { return n.CartCount > 0 }

func NewNavBar(itemCount int) NavBar {
	return NavBar{
		Brand: BrandName,
		Links: []NavLink{
			{Label: "Home", Href: "/"},
			{Label: "Products", Href: "/#products"},
		},
		CartCount: itemCount,
	}
}

// ProductCard shows one catalog product with an add-to-cart form.
type ProductCard struct {
	ID          string
	Name        string
	Description string
	Price       string
	ImageURL    string
}

func NewProductCard(p domain.Product) ProductCard {
	return ProductCard{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       FormatPrice(p.Price),
		ImageURL:    p.ImageURL,
	}
}

func NewProductCards(products []domain.Product) []ProductCard {
	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, NewProductCard(p))
	}
	return cards
}

type CartRow struct {
	ID              string
	Name            string
	ImageURL        string
	Quantity        int
	UnitPrice       string
	LineTotal       string
	DecrementActive bool
}

// CartPanel is the slide-in cart.
type CartPanel struct {
	Open      bool
	ItemCount int
	Rows      []CartRow
	Subtotal  string
	Total     string
}

func NewCartPanel(snap domain.CartSnapshot, open bool) CartPanel {
	rows := make([]CartRow, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		rows = append(rows, CartRow{
			ID:              l.ID,
			Name:            l.Name,
			ImageURL:        l.ImageURL,
			Quantity:        l.Quantity,
			UnitPrice:       FormatPrice(l.Price),
			LineTotal:       FormatPrice(l.LineTotal()),
			DecrementActive: l.Quantity > 1,
		})
	}
	return CartPanel{
		Open:      open,
		ItemCount: snap.ItemCount,
		Rows:      rows,
		Subtotal:  FormatPrice(snap.Subtotal),
		Total:     FormatPrice(snap.Total),
	}
}

func (p CartPanel) Empty() bool { return len(p.Rows) == 0 }

// CountLabel returns e.g. "1 item" or "3 items", or "" for an empty cart.
func (p CartPanel) CountLabel() string {
	switch p.ItemCount {
	case 0:
		return ""
	case 1:
		return "1 item"
	default:
		return strconv.Itoa(p.ItemCount) + " items"
	}
}

type Benefit struct {
	Icon  string
	Title string
	Text  string
}

var benefits = []Benefit{
	{Icon: "🌿", Title: "Farm Fresh", Text: "Harvested at peak ripeness and delivered within 24 hours for maximum freshness and flavor."},
	{Icon: "🚚", Title: "Fast Delivery", Text: "Quick and reliable delivery service ensuring your tomatoes arrive in perfect condition."},
	{Icon: "🏅", Title: "Quality Guaranteed", Text: "We stand behind every tomato we grow with our satisfaction guarantee. Love it or it's free."},
}

// Page is everything the storefront template needs.
type Page struct {
	Title    string
	HeroURL  string
	Notice   string
	Nav      NavBar
	Cart     CartPanel
	Products []ProductCard
	Benefits []Benefit
}

func NewPage(products []domain.Product, snap domain.CartSnapshot, panelOpen bool, notice string) Page {
	b := make([]Benefit, len(benefits))
	copy(b, benefits)
	return Page{
		Title:    BrandName,
		HeroURL:  HeroImageURL,
		Notice:   notice,
		Nav:      NewNavBar(snap.ItemCount),
		Cart:     NewCartPanel(snap, panelOpen),
		Products: NewProductCards(products),
		Benefits: b,
	}
}
