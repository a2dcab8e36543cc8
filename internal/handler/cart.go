package handler

import (
	"net/http"

	"agrimart-be/internal/cart"

	"github.com/gin-gonic/gin"
)

type replaceCartRequest struct {
	Items []cart.Item `json:"items"`
}

func (h *Handler) GetCart(c *gin.Context) {
	crt, err := h.carts.Get(c.Request.Context())
	if err != nil {
		fail(c, "GetCart", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "cart": crt})
}

func (h *Handler) ReplaceCart(c *gin.Context) {
	var req replaceCartRequest
	if err := decodeStrict(c, &req); err != nil {
		fail(c, "ReplaceCart", err)
		return
	}

	crt, err := h.carts.Replace(c.Request.Context(), req.Items)
	if err != nil {
		fail(c, "ReplaceCart", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart Updated", "cart": crt})
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	var item cart.Item
	if err := decodeStrict(c, &item); err != nil {
		fail(c, "UpdateCartItem", err)
		return
	}

	crt, err := h.carts.SetItem(c.Request.Context(), item.ProductID, item.Quantity)
	if err != nil {
		fail(c, "UpdateCartItem", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart Updated", "cart": crt})
}

func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context()); err != nil {
		fail(c, "ClearCart", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart Cleared"})
}
