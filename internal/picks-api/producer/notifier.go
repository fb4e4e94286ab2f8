package producer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/sports-picks-cms/pkg/contracts/events"
)

const publishTimeout = 5 * time.Second

type Publisher interface {
	Publish(ctx context.Context, e events.ContentChanged) error
}

// Notifier publica ContentChanged após cada escrita; falha no Kafka só gera log,
// a escrita no banco já foi confirmada.
type Notifier struct {
	log         *zap.Logger
	pub         Publisher
	now         func() time.Time
	queue       chan events.ContentChanged
	OnPublished func()
	OnError     func()
}

// NewNotifier publica no goroutine de quem chama Notify
func NewNotifier(log *zap.Logger, pub Publisher) *Notifier {
	return &Notifier{log: log, pub: pub, now: time.Now}
}

// NewAsyncNotifier enfileira os eventos e publica em Run; com a fila cheia o
// evento é descartado e os caches de embed expiram pelo TTL.
func NewAsyncNotifier(log *zap.Logger, pub Publisher, size int) *Notifier {
	n := NewNotifier(log, pub)
	n.queue = make(chan events.ContentChanged, size)
	return n
}

func (n *Notifier) Notify(ctx context.Context, entity, action, id string, siteIDs ...string) {
	if n == nil || n.pub == nil {
		return
	}
	ev := events.ContentChanged{
		Entity:  entity,
		Action:  action,
		ID:      id,
		SiteIDs: siteIDs,
		Ts:      n.now().UTC(),
	}

	if n.queue != nil {
		select {
		case n.queue <- ev:
		default:
			n.log.Warn("content change queue full, dropping",
				zap.String("entity", entity), zap.String("action", action), zap.String("id", id))
			n.fail()
		}
		return
	}

	// não herda o cancelamento do request: o cliente pode desconectar logo após a resposta
	n.publish(context.WithoutCancel(ctx), ev)
}

// Run consome a fila até ctx ser cancelado e então esvazia o que restou,
// com um prazo total de publishTimeout.
func (n *Notifier) Run(ctx context.Context) error {
	if n.queue == nil {
		return nil
	}
	for {
		select {
		case ev := <-n.queue:
			n.publish(context.Background(), ev)
		case <-ctx.Done():
			drainCtx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			defer cancel()
			for {
				select {
				case ev := <-n.queue:
					n.publish(drainCtx, ev)
				default:
					return nil
				}
			}
		}
	}
}

func (n *Notifier) publish(ctx context.Context, ev events.ContentChanged) {
	pctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := n.pub.Publish(pctx, ev); err != nil {
		n.log.Warn("content change publish failed",
			zap.String("entity", ev.Entity), zap.String("action", ev.Action), zap.String("id", ev.ID), zap.Error(err))
		n.fail()
		return
	}
	if n.OnPublished != nil {
		n.OnPublished()
	}
}

func (n *Notifier) fail() {
	if n.OnError != nil {
		n.OnError()
	}
}
