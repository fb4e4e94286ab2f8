package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/radieske/sports-picks-cms/internal/maintenance"
	"github.com/radieske/sports-picks-cms/internal/picks-api/producer"
	"github.com/radieske/sports-picks-cms/internal/shared/db"
	"github.com/radieske/sports-picks-cms/internal/shared/kafka"
	"github.com/radieske/sports-picks-cms/pkg/contracts/events"
)

func (a *app) withMaintenance(ctx context.Context, fn func(*maintenance.Service) error) error {
	loc, err := time.LoadLocation(a.cfg.CleanupTZ)
	if err != nil {
		return fmt.Errorf("CLEANUP_TZ: %w", err)
	}
	pg, err := db.ConnectPostgres(a.cfg.PostgresDSN)
	if err != nil {
		return err
	}
	defer pg.Close()
	return fn(maintenance.NewService(pg, loc))
}

func (a *app) cleanupCmd() *cobra.Command {
	var notify bool
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete events (and their picks) that started before today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withMaintenance(cmd.Context(), func(svc *maintenance.Service) error {
				res, err := svc.Cleanup(cmd.Context())
				if err != nil {
					return err
				}
				a.printf(green, "✓ %s", res.Message())
				a.println(" (cutoff " + res.Cutoff.UTC().Format(time.RFC3339) + ")")

				if notify && (res.DeletedEvents > 0 || res.DeletedPicks > 0) {
					w := kafka.NewWriter(a.cfg.KafkaBrokers, a.cfg.TopicContentChanges)
					defer w.Close()
					return a.publishCleanup(cmd.Context(), kafka.NewContentPublisher(w))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&notify, "notify", true, "publish a content change so embed caches are invalidated")
	return cmd
}

// publishCleanup avisa o embed-cache-worker; a limpeza já foi confirmada, então
// uma falha aqui só pede que o operador invalide os caches de outra forma
func (a *app) publishCleanup(ctx context.Context, pub producer.Publisher) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err := pub.Publish(ctx, events.ContentChanged{
		Entity: events.EntityEvent,
		Action: events.ActionCleanup,
		Ts:     time.Now().UTC(),
	})
	if err != nil {
		a.printf(red, "✗ content change not published, embed caches keep old events until TTL\n")
		return fmt.Errorf("publish content change: %w", err)
	}
	a.printf(green, "✓ content change published\n")
	return nil
}

func (a *app) staleEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stale-events",
		Short: "List events that ended more than 24 hours ago",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withMaintenance(cmd.Context(), func(svc *maintenance.Service) error {
				ids, err := svc.StaleEvents(cmd.Context())
				if err != nil {
					return err
				}
				c := green
				if len(ids) > 0 {
					c = yellow
				}
				a.printf(c, "%s\n", maintenance.StaleMessage(ids))
				for _, id := range ids {
					a.println("  " + id)
				}
				return nil
			})
		},
	}
}
