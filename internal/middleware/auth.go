package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"boutique_back_end/internal/services"
)

// AuthRequired authentifie la requête via le token bearer, qui est l'id
// utilisateur lui-même : header x-user-id, ou Authorization: Bearer <id>.
// Met user_id et email dans le context Gin pour les handlers suivants.
func AuthRequired(identity *services.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("x-user-id")
		if token == "" {
			if auth := c.GetHeader("Authorization"); auth != "" {
				parts := strings.Split(auth, " ")
				if len(parts) == 2 && parts[0] == "Bearer" {
					token = parts[1]
				}
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token manquant"})
			c.Abort()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := identity.Authenticate(ctx, token)
		if err != nil {
			if errors.Is(err, services.ErrUnauthorized) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
			}
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("email", user.Email)
		c.Next()
	}
}
