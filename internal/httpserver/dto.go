package httpserver

import (
	"time"

	"tomato-harvest/internal/checkout"
	"tomato-harvest/internal/domain"
	"tomato-harvest/internal/session"

	"github.com/shopspring/decimal"
)

type productResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
}

type cartLineResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"imageUrl"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type cartResponse struct {
	Lines     []cartLineResponse `json:"lines"`
	LineCount int                `json:"lineCount"`
	ItemCount int                `json:"itemCount"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	Total     decimal.Decimal    `json:"total"`
	PanelOpen bool               `json:"panelOpen"`
}

type receiptResponse struct {
	OrderID     string          `json:"orderId"`
	ItemCount   int             `json:"itemCount"`
	Total       decimal.Decimal `json:"total"`
	SubmittedAt time.Time       `json:"submittedAt"`
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type panelRequest struct {
	Open *bool `json:"open" binding:"required"`
}

func toProductResponses(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, productResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			ImageURL:    p.ImageURL,
		})
	}
	return out
}

func toCartResponse(s *session.Session) cartResponse {
	snap := s.Cart.Snapshot()
	lines := make([]cartLineResponse, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		lines = append(lines, cartLineResponse{
			ID:        l.ID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
			ImageURL:  l.ImageURL,
			LineTotal: l.LineTotal(),
		})
	}
	return cartResponse{
		Lines:     lines,
		LineCount: snap.LineCount,
		ItemCount: snap.ItemCount,
		Subtotal:  snap.Subtotal,
		Total:     snap.Total,
		PanelOpen: s.PanelOpen,
	}
}

func toReceiptResponse(r checkout.Receipt) receiptResponse {
	return receiptResponse{
		OrderID:     r.OrderID.String(),
		ItemCount:   r.ItemCount,
		Total:       r.Total,
		SubmittedAt: r.SubmittedAt,
	}
}
