package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"tomato-harvest/internal/cart"
	"tomato-harvest/internal/checkout"
	"tomato-harvest/internal/domain"
	"tomato-harvest/internal/metrics"
	"tomato-harvest/internal/session"

	"github.com/gin-gonic/gin"
)

var errLineNotFound = errors.New("cart line not found")

var quantityRangeMessage = fmt.Sprintf("quantity must be at most %d", cart.MaxQuantity)

// mutateCart applies fn to the request's cart and records op on success.
func (h *handlers) mutateCart(c *gin.Context, op string, fn func(s *cart.Store) error) (*session.Session, error) {
	s, err := h.deps.Sessions.Update(c.Request.Context(), sessionID(c), func(s *session.Session) error {
		return fn(s.Cart)
	})
	if err != nil {
		return s, err
	}
	h.deps.Metrics.CartMutation(op)
	return s, nil
}

func (h *handlers) setPanel(c *gin.Context, open bool) (*session.Session, error) {
	return h.deps.Sessions.Update(c.Request.Context(), sessionID(c), func(s *session.Session) error {
		s.PanelOpen = open
		return nil
	})
}

type checkoutResult struct {
	receipt checkout.Receipt
	err     error
}

// runCheckout saves the session whatever the checkout outcome. The returned
// error is a storage error; the checkout outcome is in the result.
func (h *handlers) runCheckout(c *gin.Context) (checkoutResult, error) {
	var res checkoutResult
	_, err := h.deps.Sessions.Update(c.Request.Context(), sessionID(c), func(s *session.Session) error {
		res.receipt, res.err = h.deps.Checkout.Checkout(c.Request.Context(), s)
		return nil
	})
	return res, err
}

func requireLine(s *cart.Store, id string) error {
	if _, ok := s.Line(id); !ok {
		return errLineNotFound
	}
	return nil
}

func addOp(s *cart.Store, productID string) error {
	if !s.AddItem(productID) {
		return domain.ErrNotFound
	}
	return nil
}

func opForQuantity(quantity int) string {
	if quantity <= 0 {
		return metrics.OpRemove
	}
	return metrics.OpUpdate
}

func writeError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func (h *handlers) internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	h.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	if !strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	writeError(c, http.StatusInternalServerError, "internal error")
}
