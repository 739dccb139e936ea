package services

import (
	"context"
	"errors"
	"log"

	"boutique_back_end/internal/models"
	"boutique_back_end/internal/storage"
)

// CheckoutService convertit un panier non vide en commande immuable.
// Il partage le verrou par user du CartService : le cycle lecture du
// panier → écriture de la commande → vidage du panier est sérialisé face
// aux mutations concurrentes du même user.
type CheckoutService struct {
	store storage.Store
	newID IDGenerator
	locks *UserLocks
}

func NewCheckoutService(store storage.Store, newID IDGenerator, locks *UserLocks) *CheckoutService {
	if newID == nil {
		newID = NewID
	}
	if locks == nil {
		locks = NewUserLocks()
	}
	return &CheckoutService{store: store, newID: newID, locks: locks}
}

// Checkout calcule le total (somme exacte des prix des snapshots), crée la
// commande puis vide le panier en place : le même panier est réutilisé
// pour les commandes suivantes.
func (s *CheckoutService) Checkout(ctx context.Context, userID string) (models.Order, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	cart, err := s.store.FindCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Order{}, ErrEmptyCart
		}
		return models.Order{}, err
	}
	if len(cart.Products) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	var total float64
	for _, p := range cart.Products {
		total += p.Price
	}

	order := models.Order{
		ID:         s.newID(),
		UserID:     userID,
		Products:   append([]models.Product(nil), cart.Products...),
		TotalPrice: total,
	}

	if err := s.store.InsertOrder(ctx, order); err != nil {
		return models.Order{}, err
	}

	cart.Products = []models.Product{}
	if err := s.store.SaveCart(ctx, cart); err != nil {
		// La commande existe déjà : on signale, le panier sera revidé à la
		// prochaine tentative.
		log.Println("❌ Vidage du panier après checkout impossible:", err)
		return models.Order{}, err
	}

	return order, nil
}

// ListOrders retourne les commandes passées du user.
func (s *CheckoutService) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.store.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}
