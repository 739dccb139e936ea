package storage

import (
	"context"
	"sync"

	"boutique_back_end/internal/models"
)

// Memory est le backend en mémoire du Store : utilisé par les tests et comme
// défaut quand aucune base n'est configurée. Tout est copié à l'entrée et à
// la sortie pour que personne ne garde un pointeur vers l'état canonique.
type Memory struct {
	mu       sync.RWMutex
	users    map[string]models.User
	products map[string]models.Product
	// ordre d'insertion des produits, pour que ListProducts soit stable
	productIDs []string
	carts      map[string]models.Cart // clé : user_id
	orders     map[string]models.Order
	orderIDs   []string
}

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[string]models.User),
		products: make(map[string]models.Product),
		carts:    make(map[string]models.Cart),
		orders:   make(map[string]models.Order),
	}
}

func (m *Memory) InsertUser(_ context.Context, u models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}

func (m *Memory) FindUser(_ context.Context, id string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (m *Memory) InsertProduct(_ context.Context, p models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertProductLocked(p)
	return nil
}

func (m *Memory) InsertProducts(_ context.Context, ps []models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range ps {
		m.insertProductLocked(p)
	}
	return nil
}

func (m *Memory) insertProductLocked(p models.Product) {
	if _, exists := m.products[p.ID]; !exists {
		m.productIDs = append(m.productIDs, p.ID)
	}
	m.products[p.ID] = p
}

func (m *Memory) ListProducts(_ context.Context) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Product, 0, len(m.productIDs))
	for _, id := range m.productIDs {
		out = append(out, m.products[id])
	}
	return out, nil
}

func (m *Memory) FindProduct(_ context.Context, id string) (models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	if !ok {
		return models.Product{}, ErrNotFound
	}
	return p, nil
}

func (m *Memory) UpdateProduct(_ context.Context, p models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; !ok {
		return ErrNotFound
	}
	m.products[p.ID] = p
	return nil
}

func (m *Memory) DeleteProduct(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return ErrNotFound
	}
	delete(m.products, id)
	for i, pid := range m.productIDs {
		if pid == id {
			m.productIDs = append(m.productIDs[:i], m.productIDs[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) FindCartByUser(_ context.Context, userID string) (models.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cart, ok := m.carts[userID]
	if !ok {
		return models.Cart{}, ErrNotFound
	}
	return copyCart(cart), nil
}

func (m *Memory) SaveCart(_ context.Context, cart models.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[cart.UserID] = copyCart(cart)
	return nil
}

func (m *Memory) InsertOrder(_ context.Context, o models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.Products = append([]models.Product(nil), o.Products...)
	m.orders[o.ID] = o
	m.orderIDs = append(m.orderIDs, o.ID)
	return nil
}

func (m *Memory) ListOrdersByUser(_ context.Context, userID string) ([]models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Order
	for _, id := range m.orderIDs {
		if o := m.orders[id]; o.UserID == userID {
			o.Products = append([]models.Product(nil), o.Products...)
			out = append(out, o)
		}
	}
	return out, nil
}

func copyCart(c models.Cart) models.Cart {
	c.Products = append([]models.Product{}, c.Products...)
	return c
}
