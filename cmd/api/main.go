package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adpulse/adpulse-api/internal/config"
	"github.com/adpulse/adpulse-api/internal/feed"
	"github.com/adpulse/adpulse-api/internal/handler"
	"github.com/adpulse/adpulse-api/internal/infra/cache"
	"github.com/adpulse/adpulse-api/internal/infra/client"
	"github.com/adpulse/adpulse-api/internal/infra/memstore"
	"github.com/adpulse/adpulse-api/internal/infra/observability"
	"github.com/adpulse/adpulse-api/internal/infra/resilience"
	"github.com/adpulse/adpulse-api/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Config (reads .env in local dev) ---
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("store_latency", cfg.StoreLatency),
		zap.Duration("feed_interval", cfg.FeedInterval),
		zap.Int("feed_window", cfg.FeedWindow),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Bool("dev_tools", cfg.DevTools),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "adpulse-api")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Store ---
	store := memstore.New(cfg.StoreLatency, logger)

	// --- Resilience + external clients ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("suggest-api")
	bulkhead := resilience.NewBulkhead(cfg.MaxConcurrency)
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	suggestClient := client.NewSuggestClient(httpClient, cfg.SuggestAPIURL, cb, bulkhead, resilienceCfg)

	// --- Services ---
	authSvc := service.NewAuthService(store, store, cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL, logger)
	accountSvc := service.NewAccountService(store, logger)
	walletSvc := service.NewWalletService(store, store, metrics, logger)
	campaignSvc := service.NewCampaignService(store, logger)
	analyticsSvc := service.NewAnalyticsService(store, store, logger)
	auctionSvc := service.NewAuctionService(store, store, store, service.NewRand(time.Now().UnixNano()), metrics, logger)
	suggestSvc := service.NewSuggestionService(suggestClient, cache.New[[]string](cfg.CacheTTL), metrics, logger)

	// --- Feed aggregator ---
	aggregator := feed.New(auctionSvc, cfg.FeedInterval, cfg.FeedWindow, metrics, logger)
	aggregator.Start()
	defer aggregator.Stop()

	// --- Router ---
	router := handler.NewRouter(handler.Deps{
		Auth:      authSvc,
		Account:   accountSvc,
		Wallet:    walletSvc,
		Campaigns: campaignSvc,
		Auction:   auctionSvc,
		Analytics: analyticsSvc,
		Suggest:   suggestSvc,
		Feed:      aggregator,
		Store:     store,
		Metrics:   metrics,
		Logger:    logger,
		DevTools:  cfg.DevTools,
	})

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
