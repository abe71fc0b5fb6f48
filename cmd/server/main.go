package main

import (
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically

	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admarket-api/api/routes"
	"admarket-api/internal/config"
	"admarket-api/internal/database"
	"admarket-api/internal/events"
	"admarket-api/internal/listing"
	"admarket-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger := logger.New()
	defer logger.Sync()

	// Get the underlying zap logger for services
	zapLogger := logger.SugaredLogger.Desugar()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database; an unreachable database is fatal
	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	// Ensure the schema exists before accepting traffic
	if err := listing.RunMigrations(db); err != nil {
		logger.Fatal("Failed to run listing migrations", "error", err)
	}
	logger.Info("Database schema ready")

	// Initialize event bus and domain event logging
	eventBus := events.NewEventBus(zapLogger)
	setupEventLogging(eventBus, zapLogger)

	// Initialize services
	listingRepository := listing.NewGormListingRepository(db, zapLogger)
	listingService := listing.NewListingService(eventBus, zapLogger, listingRepository)

	// Setup Gin router
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	routes.SetupRoutes(router, db, logger, listingService, cfg.Static.Dir)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	if err := eventBus.Close(); err != nil {
		logger.Error("Failed to close event bus", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}

// setupEventLogging subscribes an operator-visibility logger to the domain
// event topics.
func setupEventLogging(bus events.EventBus, log *zap.Logger) {
	if err := bus.Subscribe(events.TopicUserRegistered, func(e events.UserRegistered) {
		log.Info("User registered",
			zap.Uint("userID", e.UserID),
			zap.String("telegramID", e.TelegramID))
	}); err != nil {
		log.Error("Failed to subscribe to user registration events", zap.Error(err))
	}

	if err := bus.Subscribe(events.TopicListingCreated, func(e events.ListingCreated) {
		log.Info("Listing created",
			zap.Uint("adID", e.AdID),
			zap.Uint("authorID", e.AuthorID),
			zap.String("category", e.Category))
	}); err != nil {
		log.Error("Failed to subscribe to listing creation events", zap.Error(err))
	}
}
