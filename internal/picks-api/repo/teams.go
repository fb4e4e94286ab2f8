package repo

import (
	"context"

	"github.com/radieske/sports-picks-cms/internal/picks-api/dto"
)

const teamCols = `id, league_id, name, slug, short_name, logo_url, season, external_api_id, language, created_at, updated_at`

type TeamFilter struct {
	LeagueID string
	SportID  string // filtra pela liga do time
	Language string
	Limit    int
	Offset   int
}

func scanTeam(r rowScanner) (dto.Team, error) {
	var t dto.Team
	err := r.Scan(&t.ID, &t.LeagueID, &t.Name, &t.Slug, &t.ShortName, &t.LogoURL, &t.Season,
		&t.ExternalAPIID, &t.Language, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func scanTeamWithLeague(r rowScanner) (dto.Team, error) {
	var (
		t dto.Team
		l dto.TeamLeague
	)
	err := r.Scan(&t.ID, &t.LeagueID, &t.Name, &t.Slug, &t.ShortName, &t.LogoURL, &t.Season,
		&t.ExternalAPIID, &t.Language, &t.CreatedAt, &t.UpdatedAt,
		&l.ID, &l.Name, &l.Slug, &l.SportID)
	t.League = &l
	return t, err
}

// ListTeams devolve a página e o total que casa com o filtro
func (p *Postgres) ListTeams(ctx context.Context, f TeamFilter) ([]dto.Team, int, error) {
	var w where
	w.eq("t.league_id", f.LeagueID)
	w.eq("l.sport_id", f.SportID)
	w.eq("t.language", f.Language)

	const from = ` FROM teams t JOIN leagues l ON l.id = t.league_id`
	total, err := count(ctx, p.db, `SELECT count(*)`+from+w.String(), w.args...)
	if err != nil {
		return nil, 0, err
	}

	limit, args := w.page(f.Limit, f.Offset)
	rows, err := p.db.QueryContext(ctx, `
		SELECT t.id, t.league_id, t.name, t.slug, t.short_name, t.logo_url, t.season,
		       t.external_api_id, t.language, t.created_at, t.updated_at,
		       l.id, l.name, l.slug, l.sport_id`+from+w.String()+` ORDER BY t.name`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	teams, err := collect(rows, scanTeamWithLeague)
	return teams, total, err
}

func (p *Postgres) CreateTeam(ctx context.Context, in dto.TeamInput) (dto.Team, error) {
	slug := str(in.Slug)
	if slug == "" {
		slug = Slugify(str(in.Name))
	}
	return scanTeam(p.db.QueryRowContext(ctx, `
		INSERT INTO teams(league_id, name, slug, short_name, logo_url, season, external_api_id, language)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING `+teamCols,
		str(in.LeagueID), str(in.Name), slug, nullIfEmpty(in.ShortName), nullIfEmpty(in.LogoURL),
		in.Season, nullIfEmpty(in.ExternalAPIID), orDefault(in.Language, defaultLanguage)))
}

func (p *Postgres) UpdateTeam(ctx context.Context, id string, in dto.TeamInput) (dto.Team, error) {
	var s setList
	setIf(&s, "league_id", in.LeagueID)
	setIf(&s, "name", in.Name)
	setIf(&s, "slug", in.Slug)
	setNullable(&s, "short_name", in.ShortName)
	setNullable(&s, "logo_url", in.LogoURL)
	setIf(&s, "season", in.Season)
	setNullable(&s, "external_api_id", in.ExternalAPIID)
	setIf(&s, "language", in.Language)
	return updateRow(ctx, p.db, "teams", teamCols, id, &s, true, scanTeam)
}

func (p *Postgres) DeleteTeam(ctx context.Context, id string) error {
	return deleteRow(ctx, p.db, "teams", id)
}
