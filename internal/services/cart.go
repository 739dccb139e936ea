package services

import (
	"context"
	"errors"

	"boutique_back_end/internal/models"
	"boutique_back_end/internal/storage"
)

// CartService : panier mutable par utilisateur. Toute mutation passe par le
// verrou du user (UserLocks) pour ne pas perdre un ajout ou une suppression
// sous des requêtes concurrentes du même client.
type CartService struct {
	store storage.Store
	newID IDGenerator
	locks *UserLocks
}

func NewCartService(store storage.Store, newID IDGenerator, locks *UserLocks) *CartService {
	if newID == nil {
		newID = NewID
	}
	if locks == nil {
		locks = NewUserLocks()
	}
	return &CartService{store: store, newID: newID, locks: locks}
}

// GetCart retourne le panier du user, ou un panier vide s'il n'en a pas
// encore (la lecture ne crée rien).
func (s *CartService) GetCart(ctx context.Context, userID string) (models.Cart, error) {
	cart, err := s.store.FindCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Cart{UserID: userID, Products: []models.Product{}}, nil
		}
		return models.Cart{}, err
	}
	return cart, nil
}

// AddToCart charge le produit (NotFound s'il n'existe pas), crée le panier
// au premier ajout et y appose un snapshot du produit.
func (s *CartService) AddToCart(ctx context.Context, userID, productID string) (models.Cart, error) {
	product, err := s.store.FindProduct(ctx, productID)
	if err != nil {
		return models.Cart{}, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	cart, err := s.store.FindCartByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return models.Cart{}, err
		}
		// Création paresseuse au premier ajout.
		cart = models.Cart{ID: s.newID(), UserID: userID, Products: []models.Product{}}
	}

	cart.Products = append(cart.Products, product)

	if err := s.store.SaveCart(ctx, cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

// RemoveFromCart retire toutes les entrées du produit. NotFound seulement
// si le user n'a pas de panier ; retirer un produit absent est un no-op.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID string) (models.Cart, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	cart, err := s.store.FindCartByUser(ctx, userID)
	if err != nil {
		return models.Cart{}, err
	}

	kept := cart.Products[:0]
	for _, p := range cart.Products {
		if p.ID != productID {
			kept = append(kept, p)
		}
	}
	cart.Products = kept

	if err := s.store.SaveCart(ctx, cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}
