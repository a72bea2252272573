package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pakbuy/backend/config"
	"github.com/pakbuy/backend/internal/app"
	httpDelivery "github.com/pakbuy/backend/internal/delivery/http"
	"github.com/pakbuy/backend/internal/infrastructure/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: "pakbuy-title-cleaner",
	})

	logger.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Int("cache_capacity", cfg.Cache.Capacity).
		Dur("default_budget", cfg.Cleaning.DefaultBudget).
		Msg("Starting Pak Buy title cleaner v1.0.0")

	// Wire cache, AI client and cleaner; probes the AI provider once
	components := app.Build(context.Background(), cfg, logger, app.Options{})

	logger.Info().
		Bool("ai_available", components.AIClient.Enabled()).
		Msg("Hybrid cleaner ready, regex fallback always available")

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(components.Cleaner, cfg.Cleaning.MaxBatchSize, logger)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt or error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
		if err := srv.Close(); err != nil {
			logger.Error().Err(err).Msg("Forced shutdown failed")
		}
	}

	logger.Info().Msg("Server stopped")
}
