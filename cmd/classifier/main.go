package main

import (
	"fmt"
	"net/http"
	"os"

	"fluxo/internal/config"
	"fluxo/internal/handlers"
	"fluxo/internal/logger"
	"fluxo/internal/middleware"

	"github.com/gin-gonic/gin"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	classifyHandler := handlers.NewClassifyHandler()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	v1.Use(middleware.APIKeyAuthMiddleware(appConfig.ClassifierAPIKey))
	v1.POST("/classify", classifyHandler.Classify)

	logger.Get().Infof("Starting Fluxo classifier service on port %s", appConfig.ClassifierPort)
	return router.Run(":" + appConfig.ClassifierPort)
}
