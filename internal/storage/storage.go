package storage

import (
	"context"
	"errors"

	"boutique_back_end/internal/models"
)

var (
	// ErrNotFound : l'id ne résout vers aucun enregistrement de la collection.
	ErrNotFound = errors.New("enregistrement introuvable")
	// ErrUnavailable : le support de stockage n'a pas pu terminer l'opération
	// (réseau, fichier, timeout...). Jamais avalé silencieusement.
	ErrUnavailable = errors.New("stockage indisponible")
)

// Store est l'adaptateur de persistance unique : les services ne gardent
// jamais de copie des collections entre deux requêtes, toutes les lectures
// et écritures passent par ici. Les ids sont générés par les services
// (capacité injectée), le Store les persiste tels quels.
type Store interface {
	// Users
	InsertUser(ctx context.Context, u models.User) error
	FindUser(ctx context.Context, id string) (models.User, error)

	// Products
	InsertProduct(ctx context.Context, p models.Product) error
	// InsertProducts est atomique : soit tout le lot est ajouté, soit rien.
	InsertProducts(ctx context.Context, ps []models.Product) error
	ListProducts(ctx context.Context) ([]models.Product, error)
	FindProduct(ctx context.Context, id string) (models.Product, error)
	UpdateProduct(ctx context.Context, p models.Product) error
	DeleteProduct(ctx context.Context, id string) error

	// Carts (un seul panier par utilisateur)
	FindCartByUser(ctx context.Context, userID string) (models.Cart, error)
	SaveCart(ctx context.Context, cart models.Cart) error

	// Orders
	InsertOrder(ctx context.Context, o models.Order) error
	ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error)
}
