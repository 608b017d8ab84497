package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kevmogita/duka-pos/internal/config"
	"github.com/kevmogita/duka-pos/internal/domain/enum"
	domainRepo "github.com/kevmogita/duka-pos/internal/domain/repository"
	"github.com/kevmogita/duka-pos/internal/presentation/http/handler"
	"github.com/kevmogita/duka-pos/internal/presentation/http/middleware"
	"github.com/kevmogita/duka-pos/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Item      *handler.ItemHandler
	Sale      *handler.SaleHandler
	User      *handler.UserHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		v1.POST("/auth/login", h.Auth.Login)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/auth/me", h.Auth.Me)

	// Dashboard (manager only)
	protected.GET("/dashboard", middleware.RequireRole(enum.RoleManager), h.Dashboard.Stats)

	// Catalog items
	items := protected.Group("/items")
	{
		items.GET("", h.Item.List)
		items.GET("/all", middleware.RequireRole(enum.RoleManager, enum.RoleEmployee), h.Item.ListAll)
		items.GET("/low-stock", middleware.RequireRole(enum.RoleManager, enum.RoleEmployee), h.Item.GetLowStock)
		items.GET("/:id", h.Item.Get)
		items.POST("", middleware.RequireRole(enum.RoleManager), h.Item.Create)
		items.PUT("/:id", middleware.RequireRole(enum.RoleManager), h.Item.Update)
		items.DELETE("/:id", middleware.RequireRole(enum.RoleManager), h.Item.Delete)
		// Restock and write-offs; clerks sell, they do not restock
		items.PATCH("/:id/stock",
			middleware.RequireRole(enum.RoleManager, enum.RoleEmployee),
			h.Item.AdjustStock)
	}

	// Sales ledger
	sales := protected.Group("/sales")
	{
		// Checkout requires an idempotency key so a retried request never
		// rings up a second sale
		sales.POST("",
			middleware.IdempotencyRequired(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}),
			h.Sale.Create)
		sales.GET("", h.Sale.List)
		sales.GET("/statistics", middleware.RequireRole(enum.RoleManager), h.Sale.Statistics)
		sales.GET("/printer-status", h.Sale.PrinterStatus)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/receipt", h.Sale.PrintReceipt)
	}

	// User management (manager only)
	users := protected.Group("/users", middleware.RequireRole(enum.RoleManager))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}
