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

	"github.com/unitprice/backend/config"
	httpDelivery "github.com/unitprice/backend/internal/delivery/http"
	"github.com/unitprice/backend/internal/domain"
	"github.com/unitprice/backend/internal/infrastructure/cache"
	"github.com/unitprice/backend/internal/infrastructure/metrics"
	"github.com/unitprice/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting UnitPrice Backend v%s", httpDelivery.Version)
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s (TTL %s)", cfg.Cache.Type, cfg.Cache.TTL)

	// Initialize infrastructure dependencies
	var m *metrics.Metrics
	var recorder domain.MetricsRecorder
	if cfg.Metrics.Enabled {
		m = metrics.New()
		recorder = m
		log.Printf("Metrics exposed at %s", cfg.Metrics.Path)
	}

	var cacheRepo domain.CacheRepository
	if cfg.Cache.Type == "memory" {
		memoryCache := cache.NewMemoryCache(0)
		defer memoryCache.Close()
		cacheRepo = memoryCache
		if m != nil {
			m.ObserveCacheSize(memoryCache.Size)
		}
	}

	// Initialize usecase layer
	pricingService := usecase.NewPricingService(
		usecase.NewUnitConverter(),
		cacheRepo,
		recorder,
		usecase.PricingServiceConfig{
			CacheTTL:       cfg.Cache.TTL,
			CurrencySymbol: cfg.Pricing.Currency,
			Decimals:       cfg.Pricing.Decimals,
		},
	)

	log.Printf("Pricing: currency=%s, decimals=%d, rate limit=%.1f/s burst %d",
		cfg.Pricing.Currency,
		cfg.Pricing.Decimals,
		cfg.RateLimit.PerIP,
		cfg.RateLimit.Burst)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(pricingService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, m)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
