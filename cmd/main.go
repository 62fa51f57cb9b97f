package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"menu-service/internal/config"
	"menu-service/internal/engine"
	"menu-service/internal/events"
	"menu-service/internal/handlers"
	"menu-service/internal/middleware"
	"menu-service/internal/repository"
)

// @title Menu Management API
// @version 1.0.0
// @description Multi-tenant restaurant menu service with bulk import, export and cross-outlet synchronization

// @contact.name Menu API Support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8089
// @BasePath /api/v1

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Initialize Redis client
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("WARNING: Failed to parse Redis URL: %v (continuing without Redis)", err)
		redisOpts = &redis.Options{
			Addr: "localhost:6379",
		}
	}
	redisClient := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("WARNING: Failed to connect to Redis: %v (caching will be disabled)", err)
	} else {
		log.Println("✓ Redis connected successfully")
	}
	cancel()

	// Initialize repository and engine
	menuRepo := repository.NewMenuRepository(db, redisClient)
	importer := engine.NewImporter(menuRepo, logger)
	exporter := engine.NewExporter(menuRepo)
	planner := engine.NewPlanner(menuRepo, logger)
	executor := engine.NewExecutor(menuRepo, logger, cfg.SyncWorkers)

	// Initialize event publisher only if NATS_URL is set
	var eventsPublisher *events.Publisher
	if os.Getenv("NATS_URL") != "" {
		eventsPublisher, err = events.NewPublisher(logger)
		if err != nil {
			log.Printf("WARNING: Failed to initialize events publisher: %v (continuing without event publishing)", err)
		} else {
			log.Println("✓ Events publisher initialized (NATS connected)")
		}
	} else {
		log.Println("NATS_URL not set, skipping event publishing initialization")
	}
	defer func() {
		if eventsPublisher != nil {
			eventsPublisher.Close()
		}
	}()

	// Initialize handlers (publisher may be nil if NATS not configured)
	menuHandler := handlers.NewMenuHandler(menuRepo, eventsPublisher, cfg.DefaultPageSize, cfg.MaxPageSize)
	importHandler := handlers.NewImportHandler(importer, eventsPublisher)
	exportHandler := handlers.NewExportHandler(exporter)
	syncHandler := handlers.NewSyncHandler(planner, executor, eventsPublisher)
	healthHandler := handlers.NewHealthHandler(db, redisClient)

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS())

	// Health and metrics endpoints (no auth required)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/live", healthHandler.Live)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/metrics", middleware.MetricsHandler())

	// Protected API routes
	api := router.Group("/api/v1")
	api.Use(middleware.DevelopmentAuthMiddleware())
	api.Use(middleware.TenantMiddleware())

	{
		outlets := api.Group("/outlets")
		{
			outlets.GET("", menuHandler.GetOutlets)
			outlets.POST("", menuHandler.CreateOutlet)
			outlets.GET("/:outletId", menuHandler.GetOutlet)
			outlets.PUT("/:outletId", menuHandler.UpdateOutlet)
			outlets.DELETE("/:outletId", menuHandler.DeleteOutlet)

			outlets.GET("/:outletId/categories", menuHandler.GetCategories)
			outlets.POST("/:outletId/categories", menuHandler.CreateCategory)
			outlets.GET("/:outletId/categories/:categoryId", menuHandler.GetCategory)
			outlets.PUT("/:outletId/categories/:categoryId", menuHandler.UpdateCategory)
			outlets.DELETE("/:outletId/categories/:categoryId", menuHandler.DeleteCategory)

			outlets.GET("/:outletId/items", menuHandler.GetFoodItems)
			outlets.POST("/:outletId/items", menuHandler.CreateFoodItem)
			outlets.GET("/:outletId/items/:itemId", menuHandler.GetFoodItem)
			outlets.PUT("/:outletId/items/:itemId", menuHandler.UpdateFoodItem)
			outlets.DELETE("/:outletId/items/:itemId", menuHandler.DeleteFoodItem)

			outlets.GET("/:outletId/addons", menuHandler.GetAddOns)
			outlets.POST("/:outletId/addons", menuHandler.CreateAddOn)
			outlets.PUT("/:outletId/addons/:addonId", menuHandler.UpdateAddOn)
			outlets.DELETE("/:outletId/addons/:addonId", menuHandler.DeleteAddOn)

			outlets.GET("/:outletId/combos", menuHandler.GetCombos)
			outlets.POST("/:outletId/combos", menuHandler.CreateCombo)
			outlets.GET("/:outletId/combos/:comboId", menuHandler.GetCombo)
			outlets.PUT("/:outletId/combos/:comboId", menuHandler.UpdateCombo)
			outlets.DELETE("/:outletId/combos/:comboId", menuHandler.DeleteCombo)

			outlets.POST("/:outletId/menu/import", importHandler.ImportMenu)
			outlets.POST("/:outletId/menu/import/file", importHandler.ImportMenuFile)
			outlets.GET("/:outletId/menu/export", exportHandler.ExportMenu)
		}

		menu := api.Group("/menu")
		{
			menu.GET("/import/template", importHandler.GetImportTemplate)
			menu.POST("/sync/preview", syncHandler.PreviewSync)
			menu.POST("/sync", syncHandler.ExecuteSync)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := cfg.Port

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Menu service starting on port %s", port)
		if err := router.Run(":" + port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-quit
	log.Println("Shutting down menu-service...")
	log.Println("Menu service stopped")
}
