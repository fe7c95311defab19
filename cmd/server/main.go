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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orbitlettings/orbit-api/internal/backend"
	"github.com/orbitlettings/orbit-api/internal/config"
	"github.com/orbitlettings/orbit-api/internal/entities"
	"github.com/orbitlettings/orbit-api/internal/handlers"
	"github.com/orbitlettings/orbit-api/internal/logger"
	"github.com/orbitlettings/orbit-api/internal/middleware"
	"github.com/orbitlettings/orbit-api/internal/observability/tracing"
	"github.com/orbitlettings/orbit-api/internal/services"
)

const (
	serviceName     = "orbit-api"
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting Orbit API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
		"backend":     cfg.Backend.BaseURL,
	})

	// Initialize tracing (no-op when no OTLP endpoint is configured)
	ctx := context.Background()
	shutdownTracing, err := tracing.Init(ctx, log, cfg.Tracing.Endpoint, serviceName, cfg.Server.Env)
	if err != nil {
		log.Fatal("Failed to initialize tracing", err, map[string]interface{}{
			"endpoint": cfg.Tracing.Endpoint,
		})
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error("Failed to shut down tracing", err, nil)
		}
	}()

	// Backend client and the never-failing entity facade over it
	client := backend.NewClient(cfg.Backend)
	facade := entities.New(client, log)

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS -> Metrics
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))
	router.Use(middleware.Metrics())

	// Register health check and metrics routes. Readiness probes the raw
	// client, not the facade, so a backend outage actually surfaces.
	healthHandler := handlers.NewHealthHandler(client, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Initialize service and handler layers
	pageService := services.NewPageService(facade, log)
	pageHandler := handlers.NewPageHandler(pageService)

	// Register API v1 routes
	v1 := router.Group("/api/v1")
	{
		pages := v1.Group("/pages")
		{
			pages.GET("/home", pageHandler.Home)
			pages.GET("/properties", pageHandler.Browse)
			pages.GET("/property-details", pageHandler.Details)
			pages.GET("/apply", pageHandler.ApplyOptions)
			pages.POST("/apply", pageHandler.SubmitApplication)
			pages.GET("/dashboard", pageHandler.Dashboard)
			pages.GET("/resolve", pageHandler.Resolve)
		}
	}

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}
