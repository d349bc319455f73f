package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Eloy96/impresiones-prueba/internal/api"
	"github.com/Eloy96/impresiones-prueba/internal/cart"
	"github.com/Eloy96/impresiones-prueba/internal/collaborator"
	"github.com/Eloy96/impresiones-prueba/internal/config"
	"github.com/Eloy96/impresiones-prueba/internal/service"
)

func main() {
	// Load .env if present; real env vars win
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting storefront server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("collaborator_url", cfg.Collaborator.EndpointURL),
	)

	// Collaborator clients share one endpoint and retry policy
	client := collaborator.NewClient(cfg.Collaborator, logger)
	pricing := collaborator.NewPricingClient(client)
	uploads := collaborator.NewUploadClient(client)
	orders := collaborator.NewOrderClient(client)

	// Cart store with its durable snapshot
	store, err := cart.NewStore(cart.NewFileStore(cfg.Cart.FilePath, logger), logger)
	if err != nil {
		logger.Fatal("Failed to load cart snapshot", zap.Error(err))
	}

	// Storefront session components
	cfgSvc := service.NewConfigurationService(pricing, uploads, cfg.Upload.MaxFileSize, logger)
	checkout := service.NewCheckoutService(store, orders, logger)
	nav := service.NewNavigationController(logger)
	catalog := service.NewCatalogService()

	// Initialize router
	router := api.NewRouter(api.Deps{
		Config:        cfg,
		Catalog:       catalog,
		Configuration: cfgSvc,
		Cart:          store,
		Checkout:      checkout,
		Navigation:    nav,
		Logger:        logger,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Let any in-flight pricing round settle so the displayed price is
	// not lost mid-write
	settleCtx, settleCancel := context.WithTimeout(context.Background(), 5*time.Second)
	_ = cfgSvc.WaitIdle(settleCtx)
	settleCancel()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
