package router

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/usamaejaz9741/pizza-shop/internal/auth"
	"github.com/usamaejaz9741/pizza-shop/internal/catalog"
	"github.com/usamaejaz9741/pizza-shop/internal/metrics"
	"github.com/usamaejaz9741/pizza-shop/internal/middleware"
	"github.com/usamaejaz9741/pizza-shop/internal/order"
)

func NewRouter(
	authHandler *auth.Handler,
	catalogHandler *catalog.Handler,
	orderHandler *order.Handler,
) *gin.Engine {
	r := gin.Default()
	r.Use(metrics.Middleware())

	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		origins = append(origins, strings.Split(extra, ",")...)
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Cart-Session"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	// -------------------------------
	// Storefront (public)
	// -------------------------------
	api := r.Group("/api")
	{
		api.GET("/store", catalogHandler.GetStoreData)

		api.GET("/cart", orderHandler.GetCart)
		api.DELETE("/cart", orderHandler.ClearCart)
		api.POST("/cart/items", orderHandler.AddItem)
		api.PATCH("/cart/items/:uid", orderHandler.UpdateQuantity)
		api.DELETE("/cart/items/:uid", orderHandler.RemoveItem)
		api.PUT("/cart/delivery", orderHandler.SetDeliveryType)

		api.POST("/orders/whatsapp", orderHandler.SubmitOrder)
	}

	// -------------------------------
	// Back office
	// -------------------------------
	admin := r.Group("/admin/api")
	{
		admin.POST("/login", authHandler.Login)
		admin.POST("/logout", authHandler.Logout)
	}

	protected := admin.Group("")
	protected.Use(middleware.AdminSession())
	{
		protected.GET("/data", catalogHandler.GetAdminData)
		protected.PUT("/settings", catalogHandler.UpdateSettings)

		protected.POST("/categories", catalogHandler.CreateCategory)
		protected.PUT("/categories/order", catalogHandler.ReorderCategories)
		protected.DELETE("/categories/:id", catalogHandler.DeleteCategory)

		protected.POST("/products", catalogHandler.CreateProduct)
		protected.PUT("/products/:id/status", catalogHandler.SetProductStatus)
		protected.POST("/products/:id/image", catalogHandler.UploadProductImage)
		protected.DELETE("/products/:id", catalogHandler.DeleteProduct)

		protected.POST("/variants", catalogHandler.CreateVariant)
		protected.PUT("/variants/:id", catalogHandler.UpdateVariant)
		protected.DELETE("/variants/:id", catalogHandler.DeleteVariant)

		protected.POST("/addon-groups", catalogHandler.CreateAddonGroup)
		protected.DELETE("/addon-groups/:id", catalogHandler.DeleteAddonGroup)

		protected.POST("/addons", catalogHandler.CreateAddon)
		protected.DELETE("/addons/:id", catalogHandler.DeleteAddon)

		protected.PUT("/product-addon-groups", catalogHandler.SetAddonGroupLink)
	}

	return r
}
