package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gocql/gocql"

	"boutique_back_end/internal/models"
)

// Scylla est le backend ScyllaDB du Store. Un keyspace par domaine (users,
// products, orders), comme le reste de l'infra. Les tables doivent être
// créées au préalable via scripts/scylladb_init.cql — pas de création
// automatique pour éviter les problèmes de permissions.
//
// Les snapshots produits des paniers et des commandes sont stockés en JSON
// dans une colonne text : ils sont immuables, on ne les requête jamais
// champ par champ.
type Scylla struct {
	users    *gocql.Session
	products *gocql.Session
	orders   *gocql.Session
}

func NewScylla(users, products, orders *gocql.Session) *Scylla {
	return &Scylla{users: users, products: products, orders: orders}
}

func scyllaErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gocql.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func (s *Scylla) InsertUser(ctx context.Context, u models.User) error {
	return scyllaErr(s.users.Query(
		`INSERT INTO users (user_id, email, name, password) VALUES (?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, u.Password).WithContext(ctx).Exec())
}

func (s *Scylla) FindUser(ctx context.Context, id string) (models.User, error) {
	u := models.User{ID: id}
	err := s.users.Query(
		`SELECT email, name, password FROM users WHERE user_id = ?`, id).
		WithContext(ctx).Scan(&u.Email, &u.Name, &u.Password)
	if err != nil {
		return models.User{}, scyllaErr(err)
	}
	return u, nil
}

func (s *Scylla) InsertProduct(ctx context.Context, p models.Product) error {
	return scyllaErr(s.products.Query(
		`INSERT INTO products (product_id, name, description, category, price) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Category, p.Price).WithContext(ctx).Exec())
}

// InsertProducts passe par un batch loggé : le lot entier est appliqué ou
// rien, pas de catalogue partiel après un import interrompu.
func (s *Scylla) InsertProducts(ctx context.Context, ps []models.Product) error {
	if len(ps) == 0 {
		return nil
	}
	batch := s.products.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	for _, p := range ps {
		batch.Query(
			`INSERT INTO products (product_id, name, description, category, price) VALUES (?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Description, p.Category, p.Price)
	}
	return scyllaErr(s.products.ExecuteBatch(batch))
}

func (s *Scylla) ListProducts(ctx context.Context) ([]models.Product, error) {
	iter := s.products.Query(
		`SELECT product_id, name, description, category, price FROM products`).
		WithContext(ctx).Iter()

	var products []models.Product
	var p models.Product
	for iter.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price) {
		products = append(products, p)
		p = models.Product{} // reset pour la prochaine itération
	}
	if err := iter.Close(); err != nil {
		return nil, scyllaErr(err)
	}
	return products, nil
}

func (s *Scylla) FindProduct(ctx context.Context, id string) (models.Product, error) {
	p := models.Product{ID: id}
	err := s.products.Query(
		`SELECT name, description, category, price FROM products WHERE product_id = ?`, id).
		WithContext(ctx).Scan(&p.Name, &p.Description, &p.Category, &p.Price)
	if err != nil {
		return models.Product{}, scyllaErr(err)
	}
	return p, nil
}

func (s *Scylla) UpdateProduct(ctx context.Context, p models.Product) error {
	// Scylla ne distingue pas UPDATE et INSERT : on vérifie d'abord l'existence
	// pour respecter le contrat NotFound.
	if _, err := s.FindProduct(ctx, p.ID); err != nil {
		return err
	}
	return scyllaErr(s.products.Query(
		`UPDATE products SET name = ?, description = ?, category = ?, price = ? WHERE product_id = ?`,
		p.Name, p.Description, p.Category, p.Price, p.ID).WithContext(ctx).Exec())
}

func (s *Scylla) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.FindProduct(ctx, id); err != nil {
		return err
	}
	return scyllaErr(s.products.Query(
		`DELETE FROM products WHERE product_id = ?`, id).WithContext(ctx).Exec())
}

func (s *Scylla) FindCartByUser(ctx context.Context, userID string) (models.Cart, error) {
	cart := models.Cart{UserID: userID}
	var blob string
	err := s.users.Query(
		`SELECT cart_id, products FROM carts WHERE user_id = ?`, userID).
		WithContext(ctx).Scan(&cart.ID, &blob)
	if err != nil {
		return models.Cart{}, scyllaErr(err)
	}
	cart.Products = []models.Product{}
	if blob != "" {
		if err := json.Unmarshal([]byte(blob), &cart.Products); err != nil {
			return models.Cart{}, fmt.Errorf("%w: panier corrompu: %v", ErrUnavailable, err)
		}
	}
	return cart, nil
}

func (s *Scylla) SaveCart(ctx context.Context, cart models.Cart) error {
	blob, err := json.Marshal(cart.Products)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	// user_id est la clé primaire : l'upsert CQL garantit un panier unique.
	return scyllaErr(s.users.Query(
		`INSERT INTO carts (user_id, cart_id, products) VALUES (?, ?, ?)`,
		cart.UserID, cart.ID, string(blob)).WithContext(ctx).Exec())
}

func (s *Scylla) InsertOrder(ctx context.Context, o models.Order) error {
	blob, err := json.Marshal(o.Products)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	batch := s.orders.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	batch.Query(
		`INSERT INTO orders (order_id, user_id, products, total_price) VALUES (?, ?, ?, ?)`,
		o.ID, o.UserID, string(blob), o.TotalPrice)
	// Table dénormalisée pour la lecture "mes commandes".
	batch.Query(
		`INSERT INTO orders_by_user (user_id, order_id, products, total_price) VALUES (?, ?, ?, ?)`,
		o.UserID, o.ID, string(blob), o.TotalPrice)
	return scyllaErr(s.orders.ExecuteBatch(batch))
}

func (s *Scylla) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	iter := s.orders.Query(
		`SELECT order_id, products, total_price FROM orders_by_user WHERE user_id = ?`, userID).
		WithContext(ctx).Iter()

	var orders []models.Order
	var blob string
	o := models.Order{UserID: userID}
	for iter.Scan(&o.ID, &blob, &o.TotalPrice) {
		o.Products = []models.Product{}
		if blob != "" {
			if err := json.Unmarshal([]byte(blob), &o.Products); err != nil {
				return nil, fmt.Errorf("%w: commande corrompue: %v", ErrUnavailable, err)
			}
		}
		orders = append(orders, o)
		o = models.Order{UserID: userID}
	}
	if err := iter.Close(); err != nil {
		return nil, scyllaErr(err)
	}
	return orders, nil
}
