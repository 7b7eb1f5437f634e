package main

import (
	"context"
	"log"

	"github.com/baysidepv/charter-api/internal/application/service"
	"github.com/baysidepv/charter-api/internal/config"
	"github.com/baysidepv/charter-api/internal/infrastructure/database"
	"github.com/baysidepv/charter-api/internal/infrastructure/repository"
	"github.com/baysidepv/charter-api/internal/infrastructure/storage"
	"github.com/baysidepv/charter-api/internal/presentation/http/handler"
	"github.com/baysidepv/charter-api/internal/presentation/http/routes"
	"github.com/baysidepv/charter-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewWorkOrderRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize R2 storage
	r2, err := storage.NewR2Storage(context.Background(), &cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize R2 storage: %v", err)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo)
	orderService := service.NewWorkOrderService(orderRepo)
	receiptService := service.NewReceiptService(receiptRepo, orderRepo, r2, cfg.Upload.MaxSize)
	exportService := service.NewExportService(orderRepo, cfg.App.PublicURL)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		WorkOrder: handler.NewWorkOrderHandler(orderService, exportService),
		Receipt:   handler.NewReceiptHandler(receiptService, cfg.Upload.MaxSize),
		User:      handler.NewUserHandler(userService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
