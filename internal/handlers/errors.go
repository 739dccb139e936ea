package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"boutique_back_end/internal/services"
	"boutique_back_end/internal/storage"
	"boutique_back_end/internal/validation"
)

// fail traduit la taxonomie d'erreurs des services vers la réponse HTTP.
// Les erreurs de stockage partent en 500 générique sans détail interne,
// mais jamais sans être loggées.
func fail(c *gin.Context, err error) {
	var vErr *validation.Error

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": vErr.Message})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Ressource introuvable"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
	case errors.Is(err, services.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
	case errors.Is(err, services.ErrBadFeed):
		log.Println("❌ Flux d'import rejeté:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Flux d'import illisible"})
	default:
		log.Println("❌ Erreur stockage:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne"})
	}
}
