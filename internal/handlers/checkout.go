package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"boutique_back_end/internal/services"
)

type CheckoutHandler struct {
	Service *services.CheckoutService
}

// Checkout — POST /cart/checkout. 201 avec la commande, 400 si le panier
// est vide ou absent.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	order, err := h.Service.Checkout(ctx, userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GetMyOrders — GET /orders, commandes passées du user connecté.
func (h *CheckoutHandler) GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	orders, err := h.Service.ListOrders(ctx, userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
