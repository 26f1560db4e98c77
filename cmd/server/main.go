package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gdict/internal/config"
	"gdict/internal/genai"
	"gdict/internal/handlers"
	"gdict/internal/logger"
	"gdict/internal/middleware"
	"gdict/internal/service"

	"github.com/gorilla/mux"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize simple logging
	logger.Initialize(cfg.Logging)
	appLogger := logger.Default()

	appLogger.Info("Starting gdict API on port %d (env: %s)", cfg.Port, cfg.Environment)

	// Initialize generation service
	appLogger.Info("Initializing %s generation service", cfg.GenAI.Provider)
	gen, err := genai.New(context.Background(), cfg.GenAI, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize generation service: %v", err)
		log.Fatalf("Failed to initialize generation service: %v", err)
	}
	if cfg.GenAI.APIKey == "" {
		appLogger.Warn("No API key configured; lookups will fail until one is set")
	}

	// Initialize services
	appLogger.Info("Initializing services")
	dictionaryService := service.NewDictionaryService(gen, cfg.GenAI.Timeout, appLogger)

	// Initialize handlers
	appLogger.Info("Initializing handlers")
	handler := handlers.NewHandler(dictionaryService, cfg, appLogger)

	// Setup router
	appLogger.Info("Setting up HTTP router")
	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	stack := middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(appLogger.Logger),
		middleware.Recovery(appLogger.Logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.RateLimit),
	)

	// Setup server. WriteTimeout leaves room for a full generation call.
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      stack(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.GenAI.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		appLogger.Info("Starting HTTP server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed to start: %v", err)
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Received shutdown signal, initiating graceful shutdown")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	appLogger.Info("Shutting down HTTP server (timeout: 30s)")
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown: %v", err)
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	appLogger.Info("Server shutdown completed successfully")
}
