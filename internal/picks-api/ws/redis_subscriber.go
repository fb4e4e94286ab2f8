package ws

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/radieske/sports-picks-cms/pkg/contracts/events"
)

type Broadcaster interface {
	Broadcast(ev events.ContentChanged)
}

// RunRedisSubscriber escuta o canal Pub/Sub e repassa as mudanças ao hub até ctx ser cancelado
func RunRedisSubscriber(ctx context.Context, r redis.UniversalClient, channel string, hub Broadcaster, log *zap.Logger) error {
	sub := r.Subscribe(ctx, channel)
	defer sub.Close()

	// confirma a inscrição antes de consumir
	if _, err := sub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var ev events.ContentChanged
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Warn("ws subscriber unmarshal error", zap.Error(err))
				continue
			}
			hub.Broadcast(ev)
		}
	}
}
