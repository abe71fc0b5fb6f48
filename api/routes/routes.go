package routes

import (
	"path/filepath"

	"admarket-api/api/handlers"
	"admarket-api/api/middleware"
	"admarket-api/internal/listing"
	"admarket-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, logger *logger.Logger, listingService listing.ListingService, staticDir string) {
	// Add middleware
	router.Use(middleware.RequestLogging(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.Metrics())
	router.Use(gin.Recovery())

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, logger)
	adsHandler := handlers.NewAdsHandler(listingService, logger)

	// Setup routes
	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.Check)
		api.GET("/ads", adsHandler.List)
		api.POST("/ads", adsHandler.Create)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Mini-app page; everything behind it is static
	if staticDir != "" {
		router.StaticFile("/", filepath.Join(staticDir, "index.html"))
		router.StaticFile("/app.js", filepath.Join(staticDir, "app.js"))
	}
}
