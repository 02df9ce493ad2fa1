package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/homeward-labs/homeward/internal/config"
	"github.com/homeward-labs/homeward/internal/database"
	"github.com/homeward-labs/homeward/internal/estimator"
	"github.com/homeward-labs/homeward/internal/geocode"
	"github.com/homeward-labs/homeward/internal/handlers"
	"github.com/homeward-labs/homeward/internal/logger"
	"github.com/homeward-labs/homeward/internal/middleware"
	"github.com/homeward-labs/homeward/internal/repository"
	"github.com/homeward-labs/homeward/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load a local .env if present; environment variables win either way.
	_ = godotenv.Load()

	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting Homeward API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
	})

	// Create database connection pool
	ctx := context.Background()
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}
	defer db.Close()

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> Metrics -> CORS
	metrics := middleware.NewHTTPMetrics("homeward-api")
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(metrics.Middleware("homeward-api"))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	// Register health check and metrics routes
	healthHandler := handlers.NewHealthHandler(db, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Initialize repository and service layers
	recordStore := repository.NewTaxRecordStore(db)
	scenarioStore := repository.NewScenarioStore(db)

	recordCache := services.NewRecordCache(recordStore, cfg.Cache.MaxEntries, log)
	taxEstimator := estimator.New(cfg.Estimator.BaseURL, cfg.Estimator.Model, cfg.Estimator.Timeout)
	taxService := services.NewTaxService(recordCache, taxEstimator, cfg.Cache.TTL, log)

	primaryGeocoder := geocode.NewPrimaryClient(cfg.Geocoder.PrimaryURL, cfg.Geocoder.APIKey, cfg.Geocoder.Timeout)
	fallbackGeocoder := geocode.NewFallbackClient(cfg.Geocoder.FallbackURL, cfg.Geocoder.Timeout)
	locationService := services.NewLocationService(primaryGeocoder, fallbackGeocoder, log)

	affordabilityService := services.NewAffordabilityService(taxService, log)
	scenarioService := services.NewScenarioService(scenarioStore, log)

	// Initialize handlers
	propertyTaxHandler := handlers.NewPropertyTaxHandler(taxService)
	zipCodeHandler := handlers.NewZipCodeHandler(locationService)
	affordabilityHandler := handlers.NewAffordabilityHandler(affordabilityService)
	scenarioHandler := handlers.NewScenarioHandler(scenarioService)

	// Register API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/property-tax", propertyTaxHandler.Estimate)
		v1.GET("/zipcode", zipCodeHandler.Resolve)
		v1.POST("/affordability", affordabilityHandler.Estimate)
		v1.POST("/scenarios", scenarioHandler.Save)
		v1.GET("/scenarios", scenarioHandler.List)
	}

	// Start the cache sweeper
	sweeperCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	sweeper := services.NewSweeper(recordCache, cfg.Cache.SweepInterval, log)
	go sweeper.Run(sweeperCtx)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)
	stopSweeper()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}
