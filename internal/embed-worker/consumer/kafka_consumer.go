package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/sports-picks-cms/internal/shared/cache"
	"github.com/radieske/sports-picks-cms/pkg/contracts/events"
)

// MessageReader é o subconjunto de *kafka.Reader usado aqui
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Processor consome content_changes, invalida os fragmentos de embed afetados
// e repassa a mudança no canal Redis que alimenta o WebSocket do picks-api.
type Processor struct {
	Log     *zap.Logger
	Reader  MessageReader
	Redis   redis.UniversalClient
	Channel string
	DLQ     MessageWriter // opcional

	OnConsumed    func()
	OnInvalidated func(keys int64)
	OnPublished   func()
	OnError       func(stage string)
}

func (p *Processor) fail(stage string) {
	if p.OnError != nil {
		p.OnError(stage)
	}
}

// Run consome até ctx ser cancelado
func (p *Processor) Run(ctx context.Context) error {
	for {
		m, err := p.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.Log.Warn("kafka read failed", zap.Error(err))
			p.fail("read")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(500 * time.Millisecond):
			}
			continue
		}
		p.Handle(ctx, m)
	}
}

// Handle processa uma única mensagem; falhas vão pra DLQ e não interrompem o loop
func (p *Processor) Handle(ctx context.Context, m kafka.Message) {
	if p.OnConsumed != nil {
		p.OnConsumed()
	}

	var ev events.ContentChanged
	if err := json.Unmarshal(m.Value, &ev); err != nil || ev.Entity == "" {
		p.Log.Warn("invalid content change", zap.ByteString("value", m.Value), zap.Error(err))
		p.fail("decode")
		p.deadLetter(ctx, m, "decode")
		return
	}

	removed, err := p.Invalidate(ctx, ev)
	if err != nil {
		p.Log.Warn("embed cache invalidation failed",
			zap.String("entity", ev.Entity), zap.String("id", ev.ID), zap.Error(err))
		p.fail("invalidate")
		p.deadLetter(ctx, m, "invalidate")
	} else if p.OnInvalidated != nil {
		p.OnInvalidated(removed)
	}

	// o feed ao vivo não depende do cache: publica mesmo se a invalidação falhou
	if err := p.Redis.Publish(ctx, p.Channel, m.Value).Err(); err != nil {
		p.Log.Warn("content broadcast publish failed", zap.Error(err))
		p.fail("publish")
		return
	}
	if p.OnPublished != nil {
		p.OnPublished()
	}
}

// Invalidate remove as chaves de embed afetadas pela mudança e devolve quantas foram apagadas
func (p *Processor) Invalidate(ctx context.Context, ev events.ContentChanged) (int64, error) {
	var keys []string
	switch ev.Entity {
	case events.EntityPick:
		if ev.ID != "" {
			keys = append(keys, cache.PickFragmentKey(ev.ID))
		}
		for _, s := range ev.SiteIDs {
			keys = append(keys, cache.SiteFragmentKey(s))
		}
	case events.EntitySite:
		if ev.ID != "" {
			keys = append(keys, cache.SiteFragmentKey(ev.ID))
		}
	case events.EntityEvent, events.EntityTeam, events.EntityLeague, events.EntitySport,
		events.EntityBookmaker, events.EntityAnalyst, events.EntityMarketType:
		// aparecem em qualquer widget de site; os de pick expiram pelo TTL
		return cache.DeleteByPattern(ctx, p.Redis, cache.SiteFragmentPattern)
	default:
		p.Log.Debug("content change ignored", zap.String("entity", ev.Entity))
		return 0, nil
	}
	if len(keys) == 0 {
		return 0, nil
	}
	n, err := p.Redis.Del(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("del %v: %w", keys, err)
	}
	return n, nil
}

func (p *Processor) deadLetter(ctx context.Context, m kafka.Message, stage string) {
	if p.DLQ == nil {
		return
	}
	msg := kafka.Message{
		Key:   m.Key,
		Value: m.Value,
		Time:  time.Now().UTC(),
		Headers: []kafka.Header{
			{Key: "stage", Value: []byte(stage)},
			{Key: "origin_topic", Value: []byte(m.Topic)},
		},
	}
	if err := p.DLQ.WriteMessages(ctx, msg); err != nil {
		p.Log.Error("dlq write failed", zap.String("stage", stage), zap.Error(err))
		p.fail("dlq")
	}
}
