package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"boutique_back_end/internal/cache"
	"boutique_back_end/internal/config"
	"boutique_back_end/internal/database"
	"boutique_back_end/internal/handlers"
	"boutique_back_end/internal/routes"
	"boutique_back_end/internal/services"
	"boutique_back_end/internal/storage"
)

func main() {
	config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store := connectStore(ctx)

	// Cache, indexation, archivage et SMTP sont optionnels : on ne branche
	// que ce qui est configuré, les services tolèrent un nil.
	var productCache *cache.ProductCache
	if os.Getenv("REDIS_HOST") != "" {
		redisClient, err := database.ConnectRedis(ctx)
		if err != nil {
			log.Fatal("❌ ", err)
		}
		productCache = cache.NewProductCache(redisClient)
	}

	var indexer *services.Indexer
	if os.Getenv("ELASTIC_URL") != "" {
		elasticClient, err := database.ConnectElastic()
		if err != nil {
			log.Fatal("❌ ", err)
		}
		indexer = services.NewIndexer(elasticClient)
	}

	var archiver *services.FeedArchiver
	if os.Getenv("MINIO_ENDPOINT") != "" {
		minioClient, bucket, err := database.ConnectMinIO(ctx)
		if err != nil {
			log.Fatal("❌ ", err)
		}
		archiver = services.NewFeedArchiver(minioClient, bucket)
	}

	locks := services.NewUserLocks()
	identity := services.NewIdentityService(store, services.NewID)
	catalog := services.NewCatalogService(store, services.NewID, productCache, indexer, archiver)
	cart := services.NewCartService(store, services.NewID, locks)
	checkout := services.NewCheckoutService(store, services.NewID, locks)

	r := gin.Default()
	routes.RegisterRoutes(r, routes.Handlers{
		Auth:     &handlers.AuthHandler{Identity: identity},
		Product:  &handlers.ProductHandler{Catalog: catalog},
		Cart:     &handlers.CartHandler{Cart: cart},
		Checkout: &handlers.CheckoutHandler{Service: checkout},
		Identity: identity,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur boutique lancé sur le port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Serveur arrêté :", err)
	}
}

// connectStore choisit le backend de persistance via STORAGE_BACKEND :
// memory (défaut), mongo ou scylla.
func connectStore(ctx context.Context) storage.Store {
	switch backend := os.Getenv("STORAGE_BACKEND"); backend {
	case "", "memory":
		log.Println("⚠️  Stockage en mémoire : les données ne survivent pas au redémarrage")
		return storage.NewMemory()

	case "mongo":
		db, err := database.ConnectMongo(ctx)
		if err != nil {
			log.Fatal("❌ ", err)
		}
		return storage.NewMongo(db)

	case "scylla":
		manager, err := database.NewScyllaManager()
		if err != nil {
			log.Fatal("❌ Échec initialisation ScyllaDB: ", err)
		}
		users, err := manager.UsersSession()
		if err != nil {
			log.Fatal("❌ ", err)
		}
		products, err := manager.ProductsSession()
		if err != nil {
			log.Fatal("❌ ", err)
		}
		orders, err := manager.OrdersSession()
		if err != nil {
			log.Fatal("❌ ", err)
		}
		return storage.NewScylla(users, products, orders)

	default:
		log.Fatalf("❌ STORAGE_BACKEND inconnu : %q", backend)
		return nil
	}
}
