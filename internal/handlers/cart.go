package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"boutique_back_end/internal/services"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) GetCart(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cart, err := h.Cart.GetCart(ctx, userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddToCart — PUT /cart/:productId
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cart, err := h.Cart.AddToCart(ctx, userID, c.Param("productId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// RemoveFromCart — DELETE /cart/:productId
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cart, err := h.Cart.RemoveFromCart(ctx, userID, c.Param("productId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}
