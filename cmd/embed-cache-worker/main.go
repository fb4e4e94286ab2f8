package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/sports-picks-cms/internal/embed-worker/consumer"
	"github.com/radieske/sports-picks-cms/internal/shared/cache"
	"github.com/radieske/sports-picks-cms/internal/shared/config"
	"github.com/radieske/sports-picks-cms/internal/shared/kafka"
	"github.com/radieske/sports-picks-cms/internal/shared/logger"
	"github.com/radieske/sports-picks-cms/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "embed-cache-worker"
	}
	log, err := logger.New(cfg.ServiceName, cfg.Env, logger.WithLevel(cfg.LogLevel))
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	redisClient, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	// consumer group embed-cache
	reader := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicContentChanges, "embed-cache")
	defer reader.Close()
	dlq := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicContentChangesDLQ)
	defer dlq.Close()

	consumed := prometheus.NewCounter(prometheus.CounterOpts{Name: "embed_worker_messages_consumed_total", Help: "mensagens consumidas"})
	invalidated := prometheus.NewCounter(prometheus.CounterOpts{Name: "embed_worker_keys_invalidated_total", Help: "chaves de embed removidas"})
	broadcast := prometheus.NewCounter(prometheus.CounterOpts{Name: "embed_worker_broadcasts_total", Help: "mensagens repassadas ao pub/sub"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "embed_worker_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(consumed, invalidated, broadcast, errorsBy)

	proc := &consumer.Processor{
		Log:           log,
		Reader:        reader,
		Redis:         redisClient,
		Channel:       cfg.RedisPubSubChannel,
		DLQ:           dlq,
		OnConsumed:    consumed.Inc,
		OnInvalidated: func(n int64) { invalidated.Add(float64(n)) },
		OnPublished:   broadcast.Inc,
		OnError:       func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
	}

	srv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	defer srv.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("embed-cache-worker started",
		zap.String("topic", cfg.TopicContentChanges), zap.String("channel", cfg.RedisPubSubChannel))
	if err := proc.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("processor stopped with error", zap.Error(err))
	}
	log.Info("embed-cache-worker stopped")
}
