package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/sports-picks-cms/internal/maintenance"
	"github.com/radieske/sports-picks-cms/internal/picks-api/producer"
	"github.com/radieske/sports-picks-cms/internal/shared/config"
	"github.com/radieske/sports-picks-cms/internal/shared/db"
	"github.com/radieske/sports-picks-cms/internal/shared/kafka"
	"github.com/radieske/sports-picks-cms/internal/shared/logger"
	"github.com/radieske/sports-picks-cms/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "maintenance-worker"
	}
	log, err := logger.New(cfg.ServiceName, cfg.Env, logger.WithLevel(cfg.LogLevel))
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	loc, err := time.LoadLocation(cfg.CleanupTZ)
	if err != nil {
		log.Fatal("invalid CLEANUP_TZ", zap.String("tz", cfg.CleanupTZ), zap.Error(err))
	}

	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	writer := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicContentChanges)
	defer writer.Close()

	deleted := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "maintenance_rows_deleted_total", Help: "linhas removidas pela limpeza"}, []string{"table"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "maintenance_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(deleted, errorsBy)

	runner := maintenance.NewRunner(
		maintenance.NewService(pg, loc),
		producer.NewNotifier(log, kafka.NewContentPublisher(writer)),
		cfg.CleanupInterval,
		log,
	)
	runner.OnCleanup = func(res maintenance.Result) {
		deleted.WithLabelValues("events").Add(float64(res.DeletedEvents))
		deleted.WithLabelValues("picks").Add(float64(res.DeletedPicks))
		deleted.WithLabelValues("pick_sites").Add(float64(res.DeletedPickSites))
	}
	runner.OnError = func(stage string) { errorsBy.WithLabelValues(stage).Inc() }

	srv := metrics.StartMetricsServer(cfg.MetricsPort, pg.PingContext)
	defer srv.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("maintenance-worker started",
		zap.Duration("interval", cfg.CleanupInterval), zap.String("tz", loc.String()))
	if err := runner.Run(ctx); err != nil {
		log.Fatal("maintenance runner stopped with error", zap.Error(err))
	}
	log.Info("maintenance-worker stopped")
}
