package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"boutique_back_end/internal/services"
)

type AuthHandler struct {
	Identity *services.IdentityService
}

// Register crée un compte. L'id retourné sert de token bearer pour toutes
// les requêtes authentifiées suivantes.
func (h *AuthHandler) Register(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Données invalides"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	user, err := h.Identity.Register(ctx, input.Email, input.Name, input.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}
