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

	"github.com/radieske/sports-picks-cms/internal/gateway"
	"github.com/radieske/sports-picks-cms/internal/shared/config"
	"github.com/radieske/sports-picks-cms/internal/shared/httpx"
	"github.com/radieske/sports-picks-cms/internal/shared/logger"
	"github.com/radieske/sports-picks-cms/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "api-gateway"
	}
	log, err := logger.New(cfg.ServiceName, cfg.Env, logger.WithLevel(cfg.LogLevel))
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	h, err := gateway.New(log, cfg.PicksAPIURL, cfg.EmbedURL,
		metrics.NewHTTPMetrics(prometheus.DefaultRegisterer, cfg.ServiceName))
	if err != nil {
		log.Fatal("gateway config", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	health := metrics.NewMetricsServer(cfg.MetricsPort, nil)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("api-gateway listening",
		zap.String("addr", srv.Addr), zap.String("picks_api", cfg.PicksAPIURL), zap.String("embed", cfg.EmbedURL))
	if err := httpx.Serve(ctx, srv, health); err != nil {
		log.Fatal("gateway failed", zap.Error(err))
	}
	log.Info("api-gateway stopped")
}
