// Package maintenance remove eventos passados e lista os eventos velhos que os embeds escondem.
package maintenance

import (
	"context"
	"database/sql"
	"fmt"
	"time"
	_ "time/tzdata" // CLEANUP_TZ precisa funcionar em imagens sem zoneinfo
)

// StaleAfter é a idade a partir da qual um evento some dos embeds
const StaleAfter = 24 * time.Hour

type Result struct {
	DeletedEvents    int64
	DeletedPicks     int64
	DeletedPickSites int64
	Cutoff           time.Time
}

func (r Result) Message() string {
	return fmt.Sprintf("Deleted %d events, %d picks, %d pick_sites", r.DeletedEvents, r.DeletedPicks, r.DeletedPickSites)
}

type Service struct {
	db  *sql.DB
	loc *time.Location
	now func() time.Time
}

func NewService(db *sql.DB, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{db: db, loc: loc, now: time.Now}
}

// Cutoff é a meia-noite de hoje no fuso configurado
func Cutoff(now time.Time, loc *time.Location) time.Time {
	n := now.In(loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
}

// Cleanup apaga, numa transação, eventos anteriores ao corte com seus picks e atribuições
func (s *Service) Cleanup(ctx context.Context) (Result, error) {
	res := Result{Cutoff: Cutoff(s.now(), s.loc)}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return res, err
	}
	defer tx.Rollback()

	steps := []struct {
		dst   *int64
		query string
	}{
		{&res.DeletedPickSites, `
			DELETE FROM pick_sites
			WHERE pick_id IN (
				SELECT p.id FROM picks p JOIN events e ON e.id = p.event_id
				WHERE e.event_datetime < $1)`},
		{&res.DeletedPicks, `
			DELETE FROM picks
			WHERE event_id IN (SELECT id FROM events WHERE event_datetime < $1)`},
		{&res.DeletedEvents, `DELETE FROM events WHERE event_datetime < $1`},
	}
	for _, st := range steps {
		r, err := tx.ExecContext(ctx, st.query, res.Cutoff)
		if err != nil {
			return res, fmt.Errorf("cleanup: %w", err)
		}
		if *st.dst, err = r.RowsAffected(); err != nil {
			return res, err
		}
	}

	if err := tx.Commit(); err != nil {
		return res, err
	}
	return res, nil
}

// StaleEvents devolve os eventos encerrados (ou iniciados, sem end_time) há mais de 24h.
// Só reporta: picks referenciam o evento e não podem ficar órfãos.
func (s *Service) StaleEvents(ctx context.Context) ([]string, error) {
	threshold := s.now().Add(-StaleAfter)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM events
		WHERE (end_time IS NOT NULL AND end_time < $1)
		   OR (end_time IS NULL AND event_datetime < $1)
		ORDER BY event_datetime`, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func StaleMessage(ids []string) string {
	if len(ids) == 0 {
		return "No old events to detach"
	}
	return fmt.Sprintf("%d events are 24+ hours old and will be hidden from embeds", len(ids))
}
