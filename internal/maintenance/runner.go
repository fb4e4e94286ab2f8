package maintenance

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/sports-picks-cms/pkg/contracts/events"
)

type Notifier interface {
	Notify(ctx context.Context, entity, action, id string, siteIDs ...string)
}

// Runner executa limpeza e relatório de eventos velhos a cada intervalo
type Runner struct {
	svc      *Service
	notifier Notifier
	interval time.Duration
	log      *zap.Logger

	OnCleanup func(Result)
	OnError   func(stage string)
}

func NewRunner(svc *Service, n Notifier, interval time.Duration, log *zap.Logger) *Runner {
	return &Runner{svc: svc, notifier: n, interval: interval, log: log}
}

// Run roda uma vez imediatamente e depois a cada tick, até ctx ser cancelado
func (r *Runner) Run(ctx context.Context) error {
	t := time.NewTicker(r.interval)
	defer t.Stop()

	for {
		r.tick(ctx)
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}

func (r *Runner) tick(ctx context.Context) {
	res, err := r.svc.Cleanup(ctx)
	if err != nil {
		if ctx.Err() == nil {
			r.log.Error("cleanup failed", zap.Error(err))
			r.fail("cleanup")
		}
		return
	}
	if r.OnCleanup != nil {
		r.OnCleanup(res)
	}
	r.log.Info("cleanup done",
		zap.Int64("events", res.DeletedEvents),
		zap.Int64("picks", res.DeletedPicks),
		zap.Int64("pick_sites", res.DeletedPickSites),
		zap.Time("cutoff", res.Cutoff))
	if r.notifier != nil && (res.DeletedEvents > 0 || res.DeletedPicks > 0) {
		r.notifier.Notify(ctx, events.EntityEvent, events.ActionCleanup, "")
	}

	ids, err := r.svc.StaleEvents(ctx)
	if err != nil {
		if ctx.Err() == nil {
			r.log.Error("stale events failed", zap.Error(err))
			r.fail("stale_events")
		}
		return
	}
	if len(ids) > 0 {
		r.log.Info(StaleMessage(ids), zap.Strings("event_ids", ids))
	}
}

func (r *Runner) fail(stage string) {
	if r.OnError != nil {
		r.OnError(stage)
	}
}
