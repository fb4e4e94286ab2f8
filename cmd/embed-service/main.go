package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	embedcache "github.com/radieske/sports-picks-cms/internal/embed-service/cache"
	httpapi "github.com/radieske/sports-picks-cms/internal/embed-service/http"
	"github.com/radieske/sports-picks-cms/internal/embed-service/render"
	"github.com/radieske/sports-picks-cms/internal/embed-service/repo"
	"github.com/radieske/sports-picks-cms/internal/shared/cache"
	"github.com/radieske/sports-picks-cms/internal/shared/config"
	"github.com/radieske/sports-picks-cms/internal/shared/db"
	"github.com/radieske/sports-picks-cms/internal/shared/httpx"
	"github.com/radieske/sports-picks-cms/internal/shared/logger"
	"github.com/radieske/sports-picks-cms/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "embed-service"
	}
	log, err := logger.New(cfg.ServiceName, cfg.Env, logger.WithLevel(cfg.LogLevel))
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	redisClient, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}
	defer redisClient.Close()

	renderer, err := render.New()
	if err != nil {
		log.Fatal("templates", zap.Error(err))
	}

	api := httpapi.NewAPI(log,
		&repo.ReadRepo{DB: pg},
		embedcache.New(redisClient, cfg.EmbedCacheTTL),
		renderer,
		metrics.NewHTTPMetrics(prometheus.DefaultRegisterer, cfg.ServiceName),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	health := metrics.NewMetricsServer(cfg.MetricsPort, metrics.Checks(map[string]metrics.HealthFunc{
		"postgres": pg.PingContext,
		"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("embed-service listening", zap.String("addr", srv.Addr), zap.Duration("cache_ttl", cfg.EmbedCacheTTL))
	if err := httpx.Serve(ctx, srv, health); err != nil {
		log.Fatal("embed-service stopped with error", zap.Error(err))
	}
	log.Info("embed-service stopped")
}
