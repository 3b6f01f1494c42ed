package routes

import (
	"clickstore_back_end/internal/database"
	"clickstore_back_end/internal/handlers/admin"
	"clickstore_back_end/internal/handlers/product"
	"clickstore_back_end/internal/handlers/user"
	"clickstore_back_end/internal/middleware"
	"clickstore_back_end/internal/repository"
	"clickstore_back_end/internal/services"
	"clickstore_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes construit les stores et handlers à partir des clients
// connectés, puis câble toutes les routes de l'API.
func RegisterRoutes(r *gin.Engine, clients *database.Clients) {
	users := repository.NewScyllaUserStore(clients.Scylla)
	products := repository.NewScyllaProductStore(clients.Scylla)
	categories := repository.NewScyllaCategoryStore(clients.Scylla)
	orders := repository.NewScyllaOrderStore(clients.Scylla)

	images := services.NewImageService(clients.MinIO)
	search := services.NewProductIndex(clients.Elastic)
	mailer := utils.NewMailerFromEnv()

	authH := user.NewAuthHandler(users)
	cartH := user.NewCartHandler(users, products)
	checkoutH := user.NewCheckoutHandler(users, orders, mailer)
	ordersH := user.NewOrderHandler(orders)
	catalogH := product.NewCatalogHandler(products, categories, clients.Redis, search)
	adminProductsH := admin.NewProductHandler(products, images, clients.Redis, search)
	adminOrdersH := admin.NewOrderHandler(orders)

	rl := middleware.NewRateLimiter(clients.Redis)

	api := r.Group("/api")

	// Public
	api.POST("/auth/register", rl.RegisterRateLimit(), authH.Register)
	api.POST("/auth/login", rl.LoginRateLimit(), authH.Login)
	api.GET("/products", catalogH.GetProducts)
	api.GET("/categories", catalogH.GetCategories)

	// Connecté
	auth := api.Group("")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/cart", cartH.GetCart)
		auth.GET("/cart/count", cartH.CartCount)
		auth.POST("/cart/add", cartH.AddToCart)
		auth.PUT("/cart/quantity", cartH.UpdateQuantity)
		auth.DELETE("/cart/item/:id", cartH.RemoveFromCart)

		auth.POST("/checkout/confirm", checkoutH.Confirm)
		auth.GET("/orders", ordersH.GetMyOrders)
	}

	// Administration
	adm := auth.Group("/admin")
	adm.Use(middleware.RequireAdmin)
	{
		adm.POST("/products", adminProductsH.CreateProduct)
		adm.PUT("/products/:id", adminProductsH.UpdateProduct)
		adm.DELETE("/products/:id", adminProductsH.DeleteProduct)
		adm.PATCH("/products/:id/availability", adminProductsH.ToggleAvailability)
		adm.GET("/orders", adminOrdersH.ListOrders)
	}
}
