package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"boutique_back_end/internal/handlers"
	"boutique_back_end/internal/middleware"
	"boutique_back_end/internal/services"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Product  *handlers.ProductHandler
	Cart     *handlers.CartHandler
	Checkout *handlers.CheckoutHandler
	Identity *services.IdentityService
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", "x-user-id"},
	}))

	// Inscription
	r.POST("/register", h.Auth.Register)

	// Catalogue (public)
	r.GET("/products", h.Product.GetAllProducts)
	r.GET("/products/:id", h.Product.GetProduct)
	r.POST("/products", h.Product.CreateProduct)
	r.POST("/products/import", h.Product.ImportProducts)
	r.PUT("/products/:id", h.Product.UpdateProduct)
	r.DELETE("/products/:id", h.Product.DeleteProduct)

	// Panier et commandes (token bearer requis)
	auth := r.Group("/", middleware.AuthRequired(h.Identity))
	auth.GET("/cart", h.Cart.GetCart)
	auth.PUT("/cart/:productId", h.Cart.AddToCart)
	auth.DELETE("/cart/:productId", h.Cart.RemoveFromCart)
	auth.POST("/cart/checkout", h.Checkout.Checkout)
	auth.GET("/orders", h.Checkout.GetMyOrders)
}
