// Package checkout turns a cart into an order and hands it to an
// OrderSubmitter. No real submitter exists yet; Placeholder reports that.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tomato-harvest/internal/domain"
	"tomato-harvest/internal/metrics"
	"tomato-harvest/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ErrNotImplemented is returned by submitters that cannot place orders.
var ErrNotImplemented = errors.New("checkout not implemented")

// Notices shown on the next page view after a checkout attempt.
const (
	PlaceholderNotice = "Checkout functionality coming soon!"
	SubmittedNotice   = "Thanks! Your order has been placed."
	FailedNotice      = "We couldn't place your order. Please try again."
)

type Order struct {
	ID        uuid.UUID
	SessionID string
	Lines     []domain.CartLine
	ItemCount int
	Total     decimal.Decimal
	CreatedAt time.Time
}

type Receipt struct {
	OrderID     uuid.UUID       `json:"orderId"`
	ItemCount   int             `json:"itemCount"`
	Total       decimal.Decimal `json:"total"`
	SubmittedAt time.Time       `json:"submittedAt"`
}

type OrderSubmitter interface {
	Submit(ctx context.Context, order Order) (Receipt, error)
}

// NewOrder builds an order from a cart snapshot. Empty carts are rejected
// with domain.ErrEmptyCart.
func NewOrder(sessionID string, snap domain.CartSnapshot) (Order, error) {
	if snap.IsEmpty() {
		return Order{}, domain.ErrEmptyCart
	}
	lines := make([]domain.CartLine, len(snap.Lines))
	copy(lines, snap.Lines)
	return Order{
		ID:        uuid.New(),
		SessionID: sessionID,
		Lines:     lines,
		ItemCount: snap.ItemCount,
		Total:     snap.Total,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Placeholder accepts no orders.
type Placeholder struct {
	logger zerolog.Logger
}

func NewPlaceholder(logger zerolog.Logger) *Placeholder {
	return &Placeholder{logger: logger}
}

func (p *Placeholder) Submit(_ context.Context, order Order) (Receipt, error) {
	p.logger.Info().
		Str("order", order.ID.String()).
		Int("items", order.ItemCount).
		Str("total", order.Total.StringFixed(2)).
		Msg("checkout requested, no submitter configured")
	return Receipt{}, ErrNotImplemented
}

// Service runs a checkout against a session's cart.
type Service struct {
	submitter OrderSubmitter
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

func NewService(submitter OrderSubmitter, m *metrics.Metrics, logger zerolog.Logger) *Service {
	return &Service{submitter: submitter, metrics: m, logger: logger}
}

// Checkout submits the session's cart and updates the session to match the
// outcome. A submitted order clears the cart. Any attempt on a non-empty cart
// closes the panel and leaves a notice. The returned error is the submitter's
// error or domain.ErrEmptyCart; the session is consistent in every case and
// should be saved.
func (s *Service) Checkout(ctx context.Context, sess *session.Session) (Receipt, error) {
	order, err := NewOrder(sess.ID, sess.Cart.Snapshot())
	if err != nil {
		s.metrics.CheckoutAttempt(metrics.CheckoutEmpty)
		return Receipt{}, err
	}

	receipt, err := s.submitter.Submit(ctx, order)
	sess.PanelOpen = false
	switch {
	case err == nil:
		sess.Cart.Clear()
		sess.Notice = SubmittedNotice
		s.metrics.CheckoutAttempt(metrics.CheckoutSubmitted)
		s.logger.Info().Str("order", order.ID.String()).Msg("order submitted")
		return receipt, nil
	case errors.Is(err, ErrNotImplemented):
		sess.Notice = PlaceholderNotice
		s.metrics.CheckoutAttempt(metrics.CheckoutNotImplemented)
		return Receipt{}, err
	default:
		sess.Notice = FailedNotice
		s.metrics.CheckoutAttempt(metrics.CheckoutFailed)
		s.logger.Error().Err(err).Str("order", order.ID.String()).Msg("submit order")
		return Receipt{}, fmt.Errorf("submit order: %w", err)
	}
}
