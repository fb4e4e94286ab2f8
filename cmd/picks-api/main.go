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
	"golang.org/x/sync/errgroup"

	"github.com/radieske/sports-picks-cms/internal/maintenance"
	"github.com/radieske/sports-picks-cms/internal/picks-api/analysis"
	"github.com/radieske/sports-picks-cms/internal/picks-api/auth"
	httpapi "github.com/radieske/sports-picks-cms/internal/picks-api/http"
	"github.com/radieske/sports-picks-cms/internal/picks-api/producer"
	"github.com/radieske/sports-picks-cms/internal/picks-api/repo"
	"github.com/radieske/sports-picks-cms/internal/picks-api/ws"
	"github.com/radieske/sports-picks-cms/internal/shared/cache"
	"github.com/radieske/sports-picks-cms/internal/shared/config"
	"github.com/radieske/sports-picks-cms/internal/shared/db"
	"github.com/radieske/sports-picks-cms/internal/shared/httpx"
	"github.com/radieske/sports-picks-cms/internal/shared/kafka"
	"github.com/radieske/sports-picks-cms/internal/shared/logger"
	"github.com/radieske/sports-picks-cms/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "picks-api"
	}
	log, err := logger.New(cfg.ServiceName, cfg.Env, logger.WithLevel(cfg.LogLevel))
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	log.Info("postgres connected")

	redisClient, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}
	defer redisClient.Close()
	log.Info("redis connected")

	writer := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicContentChanges)
	defer writer.Close()
	log.Info("kafka writer ready", zap.String("topic", cfg.TopicContentChanges))

	published := prometheus.NewCounter(prometheus.CounterOpts{Name: "picks_api_content_changes_published_total", Help: "eventos content_changes publicados"})
	publishErrors := prometheus.NewCounter(prometheus.CounterOpts{Name: "picks_api_content_changes_errors_total", Help: "falhas ao publicar content_changes"})
	prometheus.MustRegister(published, publishErrors)

	// publicação fora do request: Kafka lento não atrasa as respostas da API
	notifier := producer.NewAsyncNotifier(log, kafka.NewContentPublisher(writer), 1024)
	notifier.OnPublished = published.Inc
	notifier.OnError = publishErrors.Inc

	loc, err := time.LoadLocation(cfg.CleanupTZ)
	if err != nil {
		log.Fatal("invalid CLEANUP_TZ", zap.String("tz", cfg.CleanupTZ), zap.Error(err))
	}

	hub := ws.NewHub(log, nil)
	defer hub.Close()

	deps := httpapi.Deps{
		Store:        repo.NewPostgres(pg),
		Auth:         auth.NewAuthenticator(auth.NewPostgres(pg)),
		Notifier:     notifier,
		Maintenance:  maintenance.NewService(pg, loc),
		WS:           hub.HandleWS,
		Metrics:      metrics.NewHTTPMetrics(prometheus.DefaultRegisterer, cfg.ServiceName),
		EmbedBaseURL: cfg.PublicEmbedURL,
	}
	// sem GENAI_API_KEY o endpoint de análise responde erro, o resto da API segue normal
	if gen, err := analysis.NewGenAIGenerator(ctx, cfg.GenAIAPIKey, cfg.GenAIModel, ""); err != nil {
		log.Warn("analysis generator disabled", zap.Error(err))
	} else {
		deps.Generator = gen
	}

	api := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           httpapi.NewServer(log, deps).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	health := metrics.NewMetricsServer(cfg.MetricsPort, metrics.Checks(map[string]metrics.HealthFunc{
		"postgres": pg.PingContext,
		"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	}))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("picks-api listening", zap.String("addr", api.Addr), zap.String("metrics", health.Addr))
		return httpx.Serve(gctx, api, health)
	})
	g.Go(func() error {
		return notifier.Run(gctx)
	})
	g.Go(func() error {
		// feed ao vivo: o embed-cache-worker repassa content_changes nesse canal
		return ws.RunRedisSubscriber(gctx, redisClient, cfg.RedisPubSubChannel, hub, log)
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		log.Fatal("picks-api stopped with error", zap.Error(err))
	}
	log.Info("picks-api stopped")
}
