package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mas-patas/patitas/internal/api"
	"github.com/mas-patas/patitas/internal/config"
	"github.com/mas-patas/patitas/internal/database"
	"github.com/mas-patas/patitas/internal/embedding"
	"github.com/mas-patas/patitas/internal/vision"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting Patitas API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database pool
	pool, err := database.NewPool(ctx, database.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Embeddings client; without an API key the client stays in the
	// unavailable state and matching degrades to direct publication
	embedder := embedding.NewClient(embedding.Config{
		BaseURL: cfg.EmbeddingsURL,
		APIKey:  cfg.EmbeddingsAPIKey,
		Model:   cfg.EmbeddingsModel,
	})
	if !embedder.Available() {
		logger.Warn("embeddings provider not configured, match checks will be skipped")
	}

	// Photo analysis (optional)
	var detector vision.LabelDetector
	if cfg.VisionEnabled {
		d, err := vision.NewDetector(ctx, cfg.AWSRegion)
		if err != nil {
			return fmt.Errorf("failed to initialize vision detector: %w", err)
		}
		detector = d
	}

	// Runtime flags
	flags := config.NewFlags(cfg)

	// Setup router
	router := api.NewRouter(logger, &api.Dependencies{
		DB:             pool,
		Flags:          flags,
		Embedder:       embedder,
		Detector:       detector,
		VisionEnabled:  cfg.VisionEnabled,
		MatchThreshold: cfg.MatchThreshold,
		MatchTopK:      cfg.MatchTopK,
	})
	router.Setup()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down server...")
	if err := router.Shutdown(); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	<-shutdownCtx.Done()
	logger.Info("server stopped")

	return nil
}
