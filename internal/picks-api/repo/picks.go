package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/radieske/sports-picks-cms/internal/picks-api/dto"
)

const pickCols = `id, event_id, analyst_id, market_type_id, bookmaker_id, selection, odds, odds_format, pick_type,
	analysis, confidence_level, category, status, result, is_best_odds, related_player_id, related_team_id,
	site_id, language, created_at, updated_at`

type PickFilter struct {
	SiteID    string // site_id do pick ou atribuição em pick_sites
	EventID   string
	SportID   string // filtra pelo esporte do evento
	AnalystID string
	Status    string
	Language  string
	Limit     int
	Offset    int
}

func pickDest(p *dto.Pick) []any {
	return []any{&p.ID, &p.EventID, &p.AnalystID, &p.MarketTypeID, &p.BookmakerID, &p.Selection, &p.Odds,
		&p.OddsFormat, &p.PickType, &p.Analysis, &p.ConfidenceLevel, &p.Category, &p.Status, &p.Result,
		&p.IsBestOdds, &p.RelatedPlayerID, &p.RelatedTeamID, &p.SiteID, &p.Language, &p.CreatedAt, &p.UpdatedAt}
}

func scanPick(r rowScanner) (dto.Pick, error) {
	var p dto.Pick
	err := r.Scan(pickDest(&p)...)
	return p, err
}

func scanPickJoined(r rowScanner) (dto.Pick, error) {
	var (
		p          dto.Pick
		ev         dto.PickEvent
		home, away dto.TeamRef
		league     dto.Ref
		sport      dto.Ref
		market     dto.Ref
		book       dto.BookmakerRef
		analyst    dto.AnalystRef
	)
	dest := append(pickDest(&p),
		&ev.ID, &ev.EventDatetime, &ev.Venue, &ev.Status,
		&home.ID, &home.Name, &home.Slug, &home.LogoURL,
		&away.ID, &away.Name, &away.Slug, &away.LogoURL,
		&league.ID, &league.Name, &league.Slug,
		&sport.ID, &sport.Name, &sport.Slug,
		&market.ID, &market.Name, &market.Slug,
		&book.ID, &book.Name, &book.Slug, &book.LogoURL,
		&analyst.ID, &analyst.DisplayName, &analyst.AvatarURL, &analyst.WinRate, &analyst.TotalPicks)
	err := r.Scan(dest...)
	ev.HomeTeam, ev.AwayTeam, ev.League, ev.Sport = &home, &away, &league, &sport
	p.Event, p.MarketType, p.Bookmaker, p.Analyst = &ev, &market, &book, &analyst
	return p, err
}

// ListPicks ordena do mais recente para o mais antigo
func (p *Postgres) ListPicks(ctx context.Context, f PickFilter) ([]dto.Pick, int, error) {
	var w where
	if f.SiteID != "" {
		w.add("(p.site_id = $%[1]d OR EXISTS (SELECT 1 FROM pick_sites ps WHERE ps.pick_id = p.id AND ps.site_id = $%[1]d))", f.SiteID)
	}
	w.eq("p.event_id", f.EventID)
	w.eq("e.sport_id", f.SportID)
	w.eq("p.analyst_id", f.AnalystID)
	w.eq("p.status", f.Status)
	w.eq("p.language", f.Language)

	total, err := count(ctx, p.db, `SELECT count(*) FROM picks p JOIN events e ON e.id = p.event_id`+w.String(), w.args...)
	if err != nil {
		return nil, 0, err
	}

	limit, args := w.page(f.Limit, f.Offset)
	rows, err := p.db.QueryContext(ctx, `
		SELECT p.id, p.event_id, p.analyst_id, p.market_type_id, p.bookmaker_id, p.selection, p.odds, p.odds_format,
		       p.pick_type, p.analysis, p.confidence_level, p.category, p.status, p.result, p.is_best_odds,
		       p.related_player_id, p.related_team_id, p.site_id, p.language, p.created_at, p.updated_at,
		       e.id, e.event_datetime, e.venue, e.status,
		       ht.id, ht.name, ht.slug, ht.logo_url,
		       awt.id, awt.name, awt.slug, awt.logo_url,
		       l.id, l.name, l.slug,
		       s.id, s.name, s.slug,
		       mt.id, mt.name, mt.slug,
		       b.id, b.name, b.slug, b.logo_url,
		       a.id, a.display_name, a.avatar_url, a.win_rate, a.total_picks
		FROM picks p
		JOIN events e ON e.id = p.event_id
		JOIN teams ht ON ht.id = e.home_team_id
		JOIN teams awt ON awt.id = e.away_team_id
		JOIN leagues l ON l.id = e.league_id
		JOIN sports s ON s.id = e.sport_id
		JOIN market_types mt ON mt.id = p.market_type_id
		JOIN bookmakers b ON b.id = p.bookmaker_id
		JOIN analyst_profiles a ON a.id = p.analyst_id`+w.String()+`
		ORDER BY p.created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	picks, err := collect(rows, scanPickJoined)
	return picks, total, err
}

// CreatePick resolve o mercado, insere o pick e as atribuições de site numa transação
func (p *Postgres) CreatePick(ctx context.Context, in dto.PickInput) (dto.Pick, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return dto.Pick{}, err
	}
	defer tx.Rollback()

	lang := orDefault(in.Language, defaultLanguage)
	marketID, err := resolveMarketType(ctx, tx, in, lang)
	if err != nil {
		return dto.Pick{}, err
	}
	if marketID == "" {
		return dto.Pick{}, ErrMarketTypeRequired
	}

	var odds float64
	if in.Odds != nil {
		odds = *in.Odds
	}
	pick, err := scanPick(tx.QueryRowContext(ctx, `
		INSERT INTO picks(event_id, analyst_id, market_type_id, bookmaker_id, selection, odds, odds_format, pick_type,
		                  analysis, confidence_level, category, is_best_odds, related_player_id, related_team_id,
		                  site_id, language, status)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,'pending')
		RETURNING `+pickCols,
		str(in.EventID), str(in.AnalystID), marketID, str(in.BookmakerID), nullIfEmpty(in.Selection), odds,
		orDefault(in.OddsFormat, "american"), orDefault(in.PickType, "manual"), nullIfEmpty(in.Analysis),
		in.ConfidenceLevel, nullIfEmpty(in.Category), in.IsBestOdds != nil && *in.IsBestOdds,
		nullIfEmpty(in.RelatedPlayerID), nullIfEmpty(in.RelatedTeamID), nullIfEmpty(in.SiteID), lang))
	if err != nil {
		return dto.Pick{}, err
	}

	if in.SiteIDs != nil {
		if err := replacePickSites(ctx, tx, pick.ID, *in.SiteIDs); err != nil {
			return dto.Pick{}, err
		}
		pick.SiteIDs = *in.SiteIDs
	}

	if err := tx.Commit(); err != nil {
		return dto.Pick{}, err
	}
	return pick, nil
}

// UpdatePick atualiza só as colunas enviadas; site_ids, se presente, substitui as atribuições.
// O pick devolvido traz os site_ids vigentes; o slice devolvido são todos os sites afetados (antigos e novos).
func (p *Postgres) UpdatePick(ctx context.Context, id string, in dto.PickInput) (dto.Pick, []string, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return dto.Pick{}, nil, err
	}
	defer tx.Rollback()

	var s setList
	setIf(&s, "event_id", in.EventID)
	setIf(&s, "analyst_id", in.AnalystID)
	if in.MarketTypeID != nil || in.MarketTypeName != nil {
		marketID, err := resolveMarketType(ctx, tx, in, orDefault(in.Language, defaultLanguage))
		if err != nil {
			return dto.Pick{}, nil, err
		}
		if marketID != "" {
			s.add("market_type_id", marketID)
		}
	}
	setIf(&s, "bookmaker_id", in.BookmakerID)
	setNullable(&s, "selection", in.Selection)
	setIf(&s, "odds", in.Odds)
	setIf(&s, "odds_format", in.OddsFormat)
	setIf(&s, "pick_type", in.PickType)
	setNullable(&s, "analysis", in.Analysis)
	setIf(&s, "confidence_level", in.ConfidenceLevel)
	setNullable(&s, "category", in.Category)
	setIf(&s, "status", in.Status)
	setNullable(&s, "result", in.Result)
	setIf(&s, "is_best_odds", in.IsBestOdds)
	setNullable(&s, "related_player_id", in.RelatedPlayerID)
	setNullable(&s, "related_team_id", in.RelatedTeamID)
	setNullable(&s, "site_id", in.SiteID)
	setIf(&s, "language", in.Language)

	pick, err := updateRow(ctx, tx, "picks", pickCols, id, &s, true, scanPick)
	if err != nil {
		return dto.Pick{}, nil, err
	}

	previous, err := pickSiteIDs(ctx, tx, id)
	if err != nil {
		return dto.Pick{}, nil, err
	}
	pick.SiteIDs = previous
	if in.SiteIDs != nil {
		if err := replacePickSites(ctx, tx, id, *in.SiteIDs); err != nil {
			return dto.Pick{}, nil, err
		}
		pick.SiteIDs = *in.SiteIDs
	}

	if err := tx.Commit(); err != nil {
		return dto.Pick{}, nil, err
	}
	return pick, union(previous, pick.SiteIDs), nil
}

// DeletePick remove o pick e devolve os sites a que estava atribuído
func (p *Postgres) DeletePick(ctx context.Context, id string) ([]string, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	siteIDs, err := pickSiteIDs(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := deleteRow(ctx, tx, "picks", id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return siteIDs, nil
}

// SetPickSites substitui as atribuições do pick e devolve a união dos sites antigos e novos
func (p *Postgres) SetPickSites(ctx context.Context, pickID string, siteIDs []string) ([]string, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT true FROM picks WHERE id = $1 FOR UPDATE`, pickID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	previous, err := pickSiteIDs(ctx, tx, pickID)
	if err != nil {
		return nil, err
	}
	if err := replacePickSites(ctx, tx, pickID, siteIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return union(previous, siteIDs), nil
}

func resolveMarketType(ctx context.Context, q queryer, in dto.PickInput, language string) (string, error) {
	if id := str(in.MarketTypeID); id != "" {
		return id, nil
	}
	if name := str(in.MarketTypeName); name != "" {
		return findOrCreateMarketType(ctx, q, name, language)
	}
	return "", nil
}

func pickSiteIDs(ctx context.Context, q queryer, pickID string) ([]string, error) {
	rows, err := q.QueryContext(ctx, `SELECT site_id FROM pick_sites WHERE pick_id = $1 ORDER BY site_id`, pickID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(r rowScanner) (string, error) {
		var id string
		err := r.Scan(&id)
		return id, err
	})
}

func replacePickSites(ctx context.Context, q queryer, pickID string, siteIDs []string) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM pick_sites WHERE pick_id = $1`, pickID); err != nil {
		return err
	}
	if len(siteIDs) == 0 {
		return nil
	}
	_, err := q.ExecContext(ctx, `
		INSERT INTO pick_sites(pick_id, site_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT (pick_id, site_id) DO NOTHING`, pickID, pq.Array(siteIDs))
	return err
}

func union(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
