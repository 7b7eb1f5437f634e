package routes

import (
	"time"

	"github.com/baysidepv/charter-api/internal/config"
	domainRepo "github.com/baysidepv/charter-api/internal/domain/repository"
	"github.com/baysidepv/charter-api/internal/presentation/http/handler"
	"github.com/baysidepv/charter-api/internal/presentation/http/middleware"
	"github.com/baysidepv/charter-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	WorkOrder *handler.WorkOrderHandler
	Receipt   *handler.ReceiptHandler
	User      *handler.UserHandler
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
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

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
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	registerWorkOrderRoutes(protected, h, deps)
	registerUserRoutes(protected, h)
}

func registerWorkOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	orders := protected.Group("/work-orders")
	{
		idempotency := middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}

		orders.GET("", h.WorkOrder.List)
		// Order creation uses idempotency middleware to prevent duplicates
		// from retried submits on flaky marina connections. Drafts carry no
		// payload to dedupe on, so their key is mandatory.
		orders.POST("", middleware.RequireRole("admin"), middleware.Idempotency(idempotency), h.WorkOrder.Create)
		orders.POST("/draft", middleware.RequireRole("admin"), middleware.IdempotencyRequired(idempotency), h.WorkOrder.CreateDraft)
		orders.GET("/export", middleware.RequireRole("admin"), h.WorkOrder.Export)
		orders.GET("/:id", h.WorkOrder.Get)
		orders.PUT("/:id", h.WorkOrder.Update)
		orders.DELETE("/:id", middleware.RequireRole("admin"), h.WorkOrder.Delete)
		orders.GET("/:id/qr", h.WorkOrder.QRCode)

		// Receipts hang off their order
		orders.POST("/:id/receipts", h.Receipt.Upload)
		orders.GET("/:id/receipts", h.Receipt.List)
	}

	receipts := protected.Group("/receipts")
	receipts.Use(middleware.RequireRole("admin"))
	{
		receipts.DELETE("/:receipt_id", h.Receipt.Delete)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequireRole("admin"))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}
