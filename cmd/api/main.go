package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tienda-pos/internal/backend"
	"tienda-pos/internal/catalog"
	"tienda-pos/internal/checkout"
	"tienda-pos/internal/config"
	"tienda-pos/internal/handler"
	"tienda-pos/internal/rate"
	"tienda-pos/internal/router"
	"tienda-pos/internal/service"

	"github.com/shopspring/decimal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting tienda-pos checkout service")

	// The ERP API speaks plain JSON numbers for money fields.
	decimal.MarshalJSONWithoutQuotes = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the ERP backend client
	erp := backend.NewClient(
		cfg.Backend.BaseURL,
		cfg.Backend.APIKey,
		time.Duration(cfg.Backend.TimeoutSeconds)*time.Second,
		logger,
	)

	// Initialize caches; both are wired by reference, not package state
	rateCache := rate.New(
		erp,
		time.Duration(cfg.Rate.FreshnessSeconds)*time.Second,
		cfg.Rate.Fallback,
		logger,
	)
	catalogCache := catalog.New(erp, logger)

	// Warm the catalogue. A failed initial refresh degrades to empty
	// collections; the catalogue stays refreshable at runtime.
	warmCtx, warmCancel := context.WithTimeout(ctx, 30*time.Second)
	if err := catalogCache.Refresh(warmCtx); err != nil {
		logger.Warn().Err(err).Msg("initial catalog refresh incomplete, starting degraded")
	}
	warmCancel()

	// Initialize services
	submitter := checkout.NewSubmitter(erp, logger)
	sessionService := service.NewSessionService(erp, catalogCache, rateCache, submitter, logger)

	// Initialize HTTP handlers
	sessionHandler := handler.NewSessionHandler(sessionService, logger)
	catalogHandler := handler.NewCatalogHandler(catalogCache, rateCache, logger)
	customerHandler := handler.NewCustomerHandler(sessionService, logger)

	// Initialize router
	mux := router.New(sessionHandler, catalogHandler, customerHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
