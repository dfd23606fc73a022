package main

import (
	"fmt"
	"net/http"
	"os"

	"fluxo/internal/classifier"
	"fluxo/internal/config"
	"fluxo/internal/database"
	"fluxo/internal/enrichment"
	"fluxo/internal/handlers"
	"fluxo/internal/logger"
	"fluxo/internal/middleware"
	"fluxo/internal/services"
	"fluxo/internal/store"
	"fluxo/internal/validator"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Wire up the enrichment pipeline
	db := dbManager.DB()
	txStore := store.NewTransactionStore(db)
	classifierClient := classifier.NewClient(
		appConfig.ClassifierURL,
		appConfig.ClassifierAPIKey,
		appConfig.ClassifierTimeout,
	)
	engine := enrichment.NewEngine(txStore, classifierClient, appConfig.EnrichmentConcurrency)
	defer engine.Stop()

	// Initialize services
	userService := services.NewUserService(db)
	transactionService := services.NewTransactionService(txStore, engine)
	insightService := services.NewInsightService(engine)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	insightHandler := handlers.NewInsightHandler(insightService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/anonymous", authHandler.CreateAnonymousSession)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// Transaction feed routes
	transactions := protected.Group("/transactions")
	transactions.GET("", transactionHandler.GetFeed)
	transactions.POST("/seed", transactionHandler.SeedDemoData)

	// Summary
	protected.GET("/summary", transactionHandler.GetSummary)

	// Insight routes
	insights := protected.Group("/insights")
	insights.GET("/expenses", insightHandler.ExpenseBreakdown)
	insights.GET("/recommendations", insightHandler.Recommendations)
	insights.GET("/offers", insightHandler.Offers)

	log.Infof("Starting Fluxo backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
