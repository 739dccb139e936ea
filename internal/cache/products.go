package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"boutique_back_end/internal/models"
)

const (
	productsKey     = "products:all"
	ProductCacheTTL = 10 * time.Minute
)

// ProductCache garde la liste complète du catalogue dans Redis pour
// décharger le stockage sur GET /products. Invalidé à chaque écriture
// catalogue. Un cache absent ou en panne n'est jamais une erreur : on
// retombe simplement sur le Store.
type ProductCache struct {
	client *redis.Client
}

func NewProductCache(client *redis.Client) *ProductCache {
	return &ProductCache{client: client}
}

// Get retourne la liste en cache, ou (nil, false) en cas de miss.
func (c *ProductCache) Get(ctx context.Context) ([]models.Product, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, productsKey).Result()
	if err != nil || data == "" {
		return nil, false
	}
	var products []models.Product
	if err := json.Unmarshal([]byte(data), &products); err != nil {
		return nil, false
	}
	return products, true
}

func (c *ProductCache) Set(ctx context.Context, products []models.Product) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, productsKey, data, ProductCacheTTL).Err(); err != nil {
		log.Println("⚠️ Mise en cache produits impossible:", err)
	}
}

// Invalidate purge le cache après toute écriture catalogue.
func (c *ProductCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, productsKey).Err(); err != nil {
		log.Println("⚠️ Invalidation cache produits impossible:", err)
	}
}
