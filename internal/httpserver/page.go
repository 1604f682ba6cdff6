package httpserver

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"tomato-harvest/internal/cart"
	"tomato-harvest/internal/domain"
	"tomato-harvest/internal/metrics"
	"tomato-harvest/internal/view"

	"github.com/gin-gonic/gin"
)

func (h *handlers) showPage(c *gin.Context) {
	s, notice, err := h.deps.Sessions.TakeNotice(c.Request.Context(), sessionID(c))
	if err != nil {
		h.internalError(c, err)
		return
	}
	page := view.NewPage(h.deps.Catalog.Products(), s.Cart.Snapshot(), s.PanelOpen, notice)
	var buf bytes.Buffer
	if err := view.Render(&buf, h.deps.Templates, page); err != nil {
		h.internalError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func backToPage(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *handlers) openPanel(c *gin.Context) {
	if _, err := h.setPanel(c, true); err != nil {
		h.internalError(c, err)
		return
	}
	backToPage(c)
}

func (h *handlers) closePanel(c *gin.Context) {
	if _, err := h.setPanel(c, false); err != nil {
		h.internalError(c, err)
		return
	}
	backToPage(c)
}

func (h *handlers) addItem(c *gin.Context) {
	productID := strings.TrimSpace(c.PostForm("product_id"))
	_, err := h.mutateCart(c, metrics.OpAdd, func(s *cart.Store) error {
		return addOp(s, productID)
	})
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		h.internalError(c, err)
		return
	}
	backToPage(c)
}

func (h *handlers) lineAction(op string, fn func(s *cart.Store, id string)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		_, err := h.mutateCart(c, op, func(s *cart.Store) error {
			if err := requireLine(s, id); err != nil {
				return err
			}
			fn(s, id)
			return nil
		})
		if err != nil && !errors.Is(err, errLineNotFound) {
			h.internalError(c, err)
			return
		}
		backToPage(c)
	}
}

func (h *handlers) incrementItem(c *gin.Context) {
	h.lineAction(metrics.OpIncrement, (*cart.Store).Increment)(c)
}

func (h *handlers) decrementItem(c *gin.Context) {
	h.lineAction(metrics.OpDecrement, (*cart.Store).Decrement)(c)
}

func (h *handlers) removeItem(c *gin.Context) {
	h.lineAction(metrics.OpRemove, (*cart.Store).RemoveItem)(c)
}

func (h *handlers) setQuantity(c *gin.Context) {
	quantity, err := strconv.Atoi(strings.TrimSpace(c.PostForm("quantity")))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid quantity")
		return
	}
	if quantity > cart.MaxQuantity {
		c.String(http.StatusBadRequest, quantityRangeMessage)
		return
	}
	h.lineAction(opForQuantity(quantity), func(s *cart.Store, id string) {
		s.UpdateQuantity(id, quantity)
	})(c)
}

func (h *handlers) clearCart(c *gin.Context) {
	_, err := h.mutateCart(c, metrics.OpClear, func(s *cart.Store) error {
		s.Clear()
		return nil
	})
	if err != nil {
		h.internalError(c, err)
		return
	}
	backToPage(c)
}

// checkout never fails the page for business outcomes; the notice tells the
// shopper what happened.
func (h *handlers) checkout(c *gin.Context) {
	if _, err := h.runCheckout(c); err != nil {
		h.internalError(c, err)
		return
	}
	backToPage(c)
}
