package router

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/spoilme-vintage/store-api/pkg/config"
)

var Router *gin.Engine

// engineCfg holds the pricing/loyalty/vault rule knobs the handlers
// resolve against. Set once at startup via InitializeRoutes.
var engineCfg *config.Engine

func InitEngine() {
	Router = gin.Default()
	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	Router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173", "https://spoilmevintage.co.za"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Total-Count"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func InitializeRoutes(cfg *config.Engine) {
	engineCfg = cfg

	api := Router.Group("/api")
	{
		api.GET("/health", HealthCheck)

		products := api.Group("/products")
		{
			products.GET("/", GetAllProducts)
			products.POST("/", CreateNewProducts)
			products.GET("/:code", GetProductByCode)
			products.PUT("/:code", EditProductByCode)
			products.DELETE("/:code", DeleteProductByCode)
			products.GET("/:code/quote", GetProductQuote)
			products.GET("/:code/reviews", GetProductReviews)
			products.POST("/:code/reviews", CreateProductReview)
		}
		api.GET("/slug/:slug", GetProductBySlug)

		customers := api.Group("/customers")
		{
			customers.POST("/", CreateCustomer)
			customers.GET("/:id", GetCustomerByID)
			customers.GET("/:id/orders", GetCustomerOrders)
			customers.POST("/:id/membership/renew", RenewMembership)
			customers.POST("/:id/membership/lapse", LapseMembership)
		}

		cart := api.Group("/cart")
		{
			cart.GET("/:sessionId", GetCart)
			cart.POST("/:sessionId/items", AddToCart)
			cart.PUT("/:sessionId/items/:lineKey", UpdateCartItem)
			cart.DELETE("/:sessionId/items/:lineKey", RemoveFromCart)
			cart.DELETE("/:sessionId/clear", ClearCart)
			cart.POST("/:sessionId/checkout", Checkout)
		}

		orders := api.Group("/orders")
		{
			orders.GET("/:orderNumber", GetOrderByNumber)
		}

		vault := api.Group("/vault")
		vault.Use(CustomerMiddleware())
		{
			vault.GET("/", GetVaultItems)
			vault.GET("/status", GetVaultStatus)
			vault.POST("/:itemId/purchase", PurchaseVaultItem)
		}

		loyalty := api.Group("/loyalty")
		loyalty.Use(CustomerMiddleware())
		{
			loyalty.GET("/balance", GetLoyaltyBalance)
			loyalty.GET("/redemption-preview", PreviewRedemption)
			loyalty.POST("/share", ClaimShareBonus)
		}

		analytics := api.Group("/analytics")
		{
			analytics.GET("/loyalty/segments", GetLoyaltySegmentsReport)
			analytics.GET("/vault/usage", GetVaultUsageReport)
			analytics.GET("/membership/tiers", GetTierBreakdownReport)

			aiAnalytics := analytics.Group("/ai")
			{
				aiAnalytics.GET("/loyalty-report", GenerateAILoyaltyReport)
				aiAnalytics.GET("/vault-report", GenerateAIVaultReport)
				aiAnalytics.GET("/membership-report", GenerateAIMembershipReport)
			}
		}
	}
}
