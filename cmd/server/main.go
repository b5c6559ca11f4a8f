package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/greentail/backend/config"
	httpDelivery "github.com/greentail/backend/internal/delivery/http"
	"github.com/greentail/backend/internal/domain"
	"github.com/greentail/backend/internal/infrastructure/cache"
	"github.com/greentail/backend/internal/infrastructure/catalog"
	"github.com/greentail/backend/internal/infrastructure/logging"
	"github.com/greentail/backend/internal/infrastructure/metrics"
	"github.com/greentail/backend/internal/usecase"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Starting GreenTail Backend v1.0.0",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	// Initialize infrastructure dependencies
	products, err := loadCatalog(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	logger.Info("Catalog loaded",
		zap.Int("products", products.Size()),
		zap.String("source", catalogSource(cfg.Catalog.Path)),
	)

	m := metrics.New()
	m.SetCatalogSize(products.Size())

	var resultCache domain.CacheRepository
	if cfg.Cache.Enabled {
		memoryCache := cache.NewMemoryCache(cfg.Cache.CleanupInterval)
		defer memoryCache.Close()
		resultCache = memoryCache
		logger.Info("Result cache enabled", zap.Duration("ttl", cfg.Cache.TTL))
	}

	// Initialize usecase layer
	catalogService := usecase.NewCatalogService(
		products,
		resultCache,
		m,
		logger,
		usecase.CatalogServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			DefaultLimit:       cfg.Matching.DefaultLimit,
			EnableDebugLogging: cfg.Matching.EnableDebugLogging,
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(catalogService, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger, m)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info("Shutting down server", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server exited")
	return nil
}

// loadCatalog reads the catalog file, falling back to the embedded catalog
func loadCatalog(path string) (*catalog.Repository, error) {
	if path == "" {
		return catalog.LoadDefault()
	}
	return catalog.LoadFile(path)
}

func catalogSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
