package routes

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spiceshelf/spiceshelf-golang/internal/handlers"
	"github.com/spiceshelf/spiceshelf-golang/internal/middleware"
)

// CORSMiddleware allows the frontend origin to call the API with credentials.
func CORSMiddleware() gin.HandlerFunc {
	origin := os.Getenv("FRONTEND_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}

	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Preflight requests get an empty 204.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	// CORS must run before anything else.
	router.Use(CORSMiddleware())

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/register", h.Register)
		v1.POST("/login", h.Login)

		// --- Public Shop Routes ---
		v1.GET("/shop", h.ShopList)
		v1.GET("/shop/products/:id", h.GetShopProduct)

		// --- Public Recipe Routes ---
		v1.GET("/recipes", h.ListRecipes)
		v1.GET("/recipes/:slug", h.GetRecipe)

		// --- Category Routes (Public Read) ---
		v1.GET("/categories", h.GetAllCategories)

		// --- Public Subscription Routes ---
		v1.GET("/plans", h.GetSubscriptionPlans)

		// --- Protected Routes (Login Required) ---
		authed := v1.Group("/")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.GET("/auth/whoami", h.Whoami)
			authed.POST("/auth/request-email-change", h.RequestEmailChange)
			authed.POST("/auth/confirm-email-change", h.ConfirmEmailChange)

			authed.GET("/subscriptions/me", h.GetMySubscription)

			// --- AI Recipe Assistant ---
			authed.POST("/ai/assistant", h.Assistant)
		}

		// --- Admin-Only Routes (Moderation Back Office) ---
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware())
		admin.Use(middleware.AdminMiddleware(h.DB))
		{
			admin.GET("/products", h.AdminSearchProducts)
			admin.GET("/products/:id", h.AdminGetProduct)
			admin.POST("/products", h.AdminCreateProduct)
			admin.PUT("/products/:id", h.AdminUpdateProduct)
			admin.PATCH("/products/:id/approve", h.AdminApproveProduct)
			admin.PATCH("/products/:id/archive", h.AdminArchiveProduct)
			admin.PATCH("/products/:id/restore", h.AdminRestoreProduct)

			admin.POST("/categories", h.CreateCategory)
			admin.DELETE("/categories/:id", h.DeleteCategory)

			admin.POST("/recipes", h.AdminCreateRecipe)
			admin.PUT("/recipes/:id", h.AdminUpdateRecipe)
			admin.DELETE("/recipes/:id", h.AdminDeleteRecipe)
			admin.PATCH("/recipes/:id/publish", h.AdminPublishRecipe)
			admin.PATCH("/recipes/:id/unpublish", h.AdminUnpublishRecipe)

			admin.POST("/users/:id/subscription", h.AssignSubscription)
			admin.GET("/dashboard-stats", h.GetAdminStats)
		}
	}

	return router
}
