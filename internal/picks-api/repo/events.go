package repo

import (
	"context"
	"time"

	"github.com/radieske/sports-picks-cms/internal/picks-api/dto"
)

const eventCols = `id, sport_id, league_id, home_team_id, away_team_id, event_datetime, end_time, venue, status,
	site_id, language, external_api_id, created_at, updated_at`

type EventFilter struct {
	SiteID   string
	SportID  string
	LeagueID string
	From     *time.Time
	To       *time.Time
	Upcoming bool
	Now      time.Time // referência para Upcoming
	Language string
	Limit    int
	Offset   int
}

func eventDest(e *dto.Event) []any {
	return []any{&e.ID, &e.SportID, &e.LeagueID, &e.HomeTeamID, &e.AwayTeamID, &e.EventDatetime, &e.EndTime,
		&e.Venue, &e.Status, &e.SiteID, &e.Language, &e.ExternalAPIID, &e.CreatedAt, &e.UpdatedAt}
}

func scanEvent(r rowScanner) (dto.Event, error) {
	var e dto.Event
	err := r.Scan(eventDest(&e)...)
	return e, err
}

func scanEventJoined(r rowScanner) (dto.Event, error) {
	var (
		e          dto.Event
		home, away dto.TeamRef
		league     dto.Ref
		sport      dto.Ref
	)
	dest := append(eventDest(&e),
		&home.ID, &home.Name, &home.Slug, &home.LogoURL,
		&away.ID, &away.Name, &away.Slug, &away.LogoURL,
		&league.ID, &league.Name, &league.Slug,
		&sport.ID, &sport.Name, &sport.Slug)
	err := r.Scan(dest...)
	e.HomeTeam, e.AwayTeam, e.League, e.Sport = &home, &away, &league, &sport
	return e, err
}

const eventJoins = `
	FROM events e
	JOIN teams ht ON ht.id = e.home_team_id
	JOIN teams awt ON awt.id = e.away_team_id
	JOIN leagues l ON l.id = e.league_id
	JOIN sports s ON s.id = e.sport_id`

// ListEvents ordena por data ascendente e devolve o total filtrado
func (p *Postgres) ListEvents(ctx context.Context, f EventFilter) ([]dto.Event, int, error) {
	var w where
	w.eq("e.site_id", f.SiteID)
	w.eq("e.sport_id", f.SportID)
	w.eq("e.league_id", f.LeagueID)
	if f.From != nil {
		w.add("e.event_datetime >= $%[1]d", *f.From)
	}
	if f.To != nil {
		w.add("e.event_datetime <= $%[1]d", *f.To)
	}
	if f.Upcoming {
		w.add("e.event_datetime >= $%[1]d", f.Now)
	}
	w.eq("e.language", f.Language)

	total, err := count(ctx, p.db, `SELECT count(*) FROM events e`+w.String(), w.args...)
	if err != nil {
		return nil, 0, err
	}

	limit, args := w.page(f.Limit, f.Offset)
	rows, err := p.db.QueryContext(ctx, `
		SELECT e.id, e.sport_id, e.league_id, e.home_team_id, e.away_team_id, e.event_datetime, e.end_time,
		       e.venue, e.status, e.site_id, e.language, e.external_api_id, e.created_at, e.updated_at,
		       ht.id, ht.name, ht.slug, ht.logo_url,
		       awt.id, awt.name, awt.slug, awt.logo_url,
		       l.id, l.name, l.slug,
		       s.id, s.name, s.slug`+eventJoins+w.String()+`
		ORDER BY e.event_datetime ASC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	events, err := collect(rows, scanEventJoined)
	return events, total, err
}

// CreateEvent grava sempre com status "scheduled"
func (p *Postgres) CreateEvent(ctx context.Context, in dto.EventInput) (dto.Event, error) {
	var end any
	if in.EndTime != nil && !in.EndTime.IsZero() {
		end = in.EndTime.Time
	}
	return scanEvent(p.db.QueryRowContext(ctx, `
		INSERT INTO events(sport_id, league_id, home_team_id, away_team_id, event_datetime, end_time, venue, site_id,
		                   language, external_api_id, status)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,'scheduled')
		RETURNING `+eventCols,
		str(in.SportID), str(in.LeagueID), str(in.HomeTeamID), str(in.AwayTeamID), in.EventDatetime.Time, end,
		nullIfEmpty(in.Venue), nullIfEmpty(in.SiteID), orDefault(in.Language, defaultLanguage), nullIfEmpty(in.ExternalAPIID)))
}

func (p *Postgres) UpdateEvent(ctx context.Context, id string, in dto.EventInput) (dto.Event, error) {
	var s setList
	setIf(&s, "sport_id", in.SportID)
	setIf(&s, "league_id", in.LeagueID)
	setIf(&s, "home_team_id", in.HomeTeamID)
	setIf(&s, "away_team_id", in.AwayTeamID)
	if in.EventDatetime != nil && !in.EventDatetime.IsZero() {
		s.add("event_datetime", in.EventDatetime.Time)
	}
	if in.EndTime != nil {
		if in.EndTime.IsZero() {
			s.add("end_time", nil)
		} else {
			s.add("end_time", in.EndTime.Time)
		}
	}
	setNullable(&s, "venue", in.Venue)
	setIf(&s, "status", in.Status)
	setNullable(&s, "site_id", in.SiteID)
	setIf(&s, "language", in.Language)
	setNullable(&s, "external_api_id", in.ExternalAPIID)
	return updateRow(ctx, p.db, "events", eventCols, id, &s, true, scanEvent)
}

func (p *Postgres) DeleteEvent(ctx context.Context, id string) error {
	return deleteRow(ctx, p.db, "events", id)
}
