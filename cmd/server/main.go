package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casafile/api/internal/config"
	"github.com/casafile/api/internal/handlers"
	"github.com/casafile/api/internal/logger"
	"github.com/casafile/api/internal/middleware"
	"github.com/casafile/api/internal/services"
	"github.com/casafile/api/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load .env if present, then configuration from the environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting Casafile intake API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
	})

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	// Session store and business layer. All form state is in memory and
	// dies with the process.
	store := session.NewStore(cfg.Sessions.Max)
	submitter := services.NewHTTPSubmitter(cfg.Submit.URL, &http.Client{
		Timeout: cfg.Submit.Timeout,
	})
	formService := services.NewFormService(store, submitter, log)

	// Register health check routes
	healthHandler := handlers.NewHealthHandler(store, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)

	// Acknowledgment stub consumed by the review step
	submitHandler := handlers.NewSubmitHandler()
	router.POST("/api/submit", submitHandler.Submit)

	// Register API v1 routes
	sessionHandler := handlers.NewSessionHandler(formService)
	v1 := router.Group("/api/v1")
	sessionHandler.Register(v1)

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
