package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"tomato-harvest/internal/cart"
	"tomato-harvest/internal/checkout"
	"tomato-harvest/internal/domain"
	"tomato-harvest/internal/metrics"
	"tomato-harvest/internal/session"

	"github.com/gin-gonic/gin"
)

func (h *handlers) apiProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": toProductResponses(h.deps.Catalog.Products())})
}

func (h *handlers) apiCart(c *gin.Context) {
	s, err := h.deps.Sessions.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(s))
}

func (h *handlers) apiAddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "productId is required")
		return
	}
	productID := strings.TrimSpace(req.ProductID)
	s, err := h.mutateCart(c, metrics.OpAdd, func(s *cart.Store) error {
		return addOp(s, productID)
	})
	h.writeCart(c, s, err)
}

func (h *handlers) apiUpdateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "quantity is required")
		return
	}
	quantity := *req.Quantity
	if quantity > cart.MaxQuantity {
		writeError(c, http.StatusBadRequest, quantityRangeMessage)
		return
	}
	id := c.Param("id")
	s, err := h.mutateCart(c, opForQuantity(quantity), func(s *cart.Store) error {
		if err := requireLine(s, id); err != nil {
			return err
		}
		s.UpdateQuantity(id, quantity)
		return nil
	})
	h.writeCart(c, s, err)
}

func (h *handlers) apiRemoveItem(c *gin.Context) {
	id := c.Param("id")
	s, err := h.mutateCart(c, metrics.OpRemove, func(s *cart.Store) error {
		if err := requireLine(s, id); err != nil {
			return err
		}
		s.RemoveItem(id)
		return nil
	})
	h.writeCart(c, s, err)
}

func (h *handlers) apiClearCart(c *gin.Context) {
	s, err := h.mutateCart(c, metrics.OpClear, func(s *cart.Store) error {
		s.Clear()
		return nil
	})
	h.writeCart(c, s, err)
}

func (h *handlers) apiSetPanel(c *gin.Context) {
	var req panelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "open is required")
		return
	}
	s, err := h.setPanel(c, *req.Open)
	h.writeCart(c, s, err)
}

func (h *handlers) apiCheckout(c *gin.Context) {
	res, err := h.runCheckout(c)
	if err != nil {
		h.internalError(c, err)
		return
	}
	switch {
	case res.err == nil:
		c.JSON(http.StatusOK, toReceiptResponse(res.receipt))
	case errors.Is(res.err, domain.ErrEmptyCart):
		writeError(c, http.StatusConflict, domain.ErrEmptyCart.Error())
	case errors.Is(res.err, checkout.ErrNotImplemented):
		writeError(c, http.StatusNotImplemented, checkout.PlaceholderNotice)
	default:
		writeError(c, http.StatusBadGateway, checkout.FailedNotice)
	}
}

func (h *handlers) writeCart(c *gin.Context, s *session.Session, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, toCartResponse(s))
	case errors.Is(err, domain.ErrNotFound):
		writeError(c, http.StatusNotFound, "product not found")
	case errors.Is(err, errLineNotFound):
		writeError(c, http.StatusNotFound, errLineNotFound.Error())
	default:
		h.internalError(c, err)
	}
}
