package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tradeops/tradesearch/internal/analytics"
	"github.com/tradeops/tradesearch/internal/auth"
	"github.com/tradeops/tradesearch/internal/listing"
	"github.com/tradeops/tradesearch/internal/listing/cache"
	"github.com/tradeops/tradesearch/internal/listing/handler"
	"github.com/tradeops/tradesearch/pkg/config"
	"github.com/tradeops/tradesearch/pkg/health"
	"github.com/tradeops/tradesearch/pkg/kafka"
	"github.com/tradeops/tradesearch/pkg/logger"
	"github.com/tradeops/tradesearch/pkg/metrics"
	"github.com/tradeops/tradesearch/pkg/middleware"
	"github.com/tradeops/tradesearch/pkg/postgres"
	pkgredis "github.com/tradeops/tradesearch/pkg/redis"
	"github.com/tradeops/tradesearch/pkg/resilience"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup("search", cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting search service", "port", cfg.Server.Port)

	m := metrics.New()

	pg, err := postgres.New(cfg.Postgres)
	if err != nil {
		slog.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pg.Close()
	slog.Info("postgres connected", "host", cfg.Postgres.Host, "database", cfg.Postgres.Database)

	store := listing.NewStore(pg, listing.StoreConfig{
		QueryTimeout:    cfg.Search.QueryTimeout,
		BreakerFailures: cfg.Search.BreakerFailures,
		BreakerReset:    cfg.Search.BreakerReset,
	})

	// The cache is optional: when Redis is down the service degrades to
	// uncached queries instead of failing.
	var queryCache *cache.QueryCache
	redisClient, err := pkgredis.NewClient(cfg.Redis)
	if err != nil {
		slog.Warn("redis unavailable, result caching disabled", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
		queryCache = cache.New(redisClient, cfg.Redis)
		slog.Info("result cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.QueryEvents)
	defer producer.Close()
	collector := analytics.NewCollector(producer, 10000)
	collector.Start(ctx)
	defer collector.Close()

	checker := health.NewChecker()
	checker.Register("postgres", func(ctx context.Context) health.ComponentHealth {
		if store.BreakerState() == resilience.StateOpen {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: "circuit breaker open"}
		}
		if err := store.Ping(ctx); err != nil {
			return health.ComponentHealth{Status: health.StatusDown, Message: err.Error()}
		}
		return health.ComponentHealth{Status: health.StatusUp}
	})
	checker.Register("redis", func(ctx context.Context) health.ComponentHealth {
		if redisClient == nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: "not configured"}
		}
		if err := redisClient.Ping(ctx); err != nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
		}
		return health.ComponentHealth{Status: health.StatusUp}
	})

	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.BreakerState.WithLabelValues("listing-db").Set(float64(store.BreakerState()))
			}
		}
	}()

	h := handler.New(store, queryCache, collector, m, cfg.Search.DefaultLimit, cfg.Search.MaxResults)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/shipments/search", h.Search)
	mux.HandleFunc("GET /api/v1/query/parse", h.Parse)
	mux.HandleFunc("GET /api/v1/cache/stats", h.CacheStats)
	mux.HandleFunc("POST /api/v1/cache/invalidate", h.CacheInvalidate)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	var chain http.Handler = mux
	chain = middleware.Timeout(cfg.Server.WriteTimeout)(chain)
	if cfg.Auth.Enabled {
		validator := auth.NewValidator(pg)
		limiter := auth.NewLimiter(cfg.Auth.RateLimitWindow)
		chain = auth.Middleware(validator, limiter)(chain)
		slog.Info("api key authentication enabled")
	}
	chain = middleware.Metrics(m)(chain)
	chain = middleware.RequestID(chain)

	if cfg.Metrics.Enabled {
		go func() {
			if err := metrics.Serve(cfg.Metrics.Port); err != nil {
				slog.Error("metrics server error", "error", err)
			}
		}()
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      chain,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("search service listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	slog.Info("search service stopped")
}
