package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/kevmogita/duka-pos/internal/application/service"
	"github.com/kevmogita/duka-pos/internal/config"
	"github.com/kevmogita/duka-pos/internal/infrastructure/database"
	"github.com/kevmogita/duka-pos/internal/infrastructure/repository"
	"github.com/kevmogita/duka-pos/internal/presentation/http/handler"
	"github.com/kevmogita/duka-pos/internal/presentation/http/routes"
	"github.com/kevmogita/duka-pos/pkg/printer"
	"github.com/kevmogita/duka-pos/pkg/utils"
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
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo, saleRepo)
	itemService := service.NewItemService(itemRepo, saleRepo)
	saleService := service.NewSaleService(saleRepo, itemRepo)
	statsService := service.NewStatsService(saleRepo)
	dashboardService := service.NewDashboardService(analyticsRepo, itemRepo, saleRepo)
	receiptService := service.NewReceiptService(thermalPrinter, saleRepo, cfg)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Item:      handler.NewItemHandler(itemService),
		Sale:      handler.NewSaleHandler(saleService, statsService, receiptService),
		User:      handler.NewUserHandler(userService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
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
