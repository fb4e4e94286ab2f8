package repo

import (
	"context"

	"github.com/radieske/sports-picks-cms/internal/picks-api/dto"
)

const leagueCols = `id, sport_id, name, slug, country, logo_url, site_id, language, created_at, updated_at`

func scanLeague(r rowScanner) (dto.League, error) {
	var l dto.League
	err := r.Scan(&l.ID, &l.SportID, &l.Name, &l.Slug, &l.Country, &l.LogoURL, &l.SiteID, &l.Language, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

func (p *Postgres) ListLeagues(ctx context.Context, sportID, language string) ([]dto.League, error) {
	var w where
	w.eq("sport_id", sportID)
	w.eq("language", language)
	rows, err := p.db.QueryContext(ctx, `SELECT `+leagueCols+` FROM leagues`+w.String()+` ORDER BY name`, w.args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanLeague)
}

func (p *Postgres) CreateLeague(ctx context.Context, in dto.LeagueInput) (dto.League, error) {
	slug := str(in.Slug)
	if slug == "" {
		slug = Slugify(str(in.Name))
	}
	return scanLeague(p.db.QueryRowContext(ctx, `
		INSERT INTO leagues(sport_id, name, slug, country, logo_url, site_id, language)
		VALUES($1,$2,$3,$4,$5,$6,$7)
		RETURNING `+leagueCols,
		str(in.SportID), str(in.Name), slug, nullIfEmpty(in.Country), nullIfEmpty(in.LogoURL),
		nullIfEmpty(in.SiteID), orDefault(in.Language, defaultLanguage)))
}

func (p *Postgres) UpdateLeague(ctx context.Context, id string, in dto.LeagueInput) (dto.League, error) {
	var s setList
	setIf(&s, "sport_id", in.SportID)
	setIf(&s, "name", in.Name)
	setIf(&s, "slug", in.Slug)
	setNullable(&s, "country", in.Country)
	setNullable(&s, "logo_url", in.LogoURL)
	setNullable(&s, "site_id", in.SiteID)
	setIf(&s, "language", in.Language)
	return updateRow(ctx, p.db, "leagues", leagueCols, id, &s, true, scanLeague)
}

func (p *Postgres) DeleteLeague(ctx context.Context, id string) error {
	return deleteRow(ctx, p.db, "leagues", id)
}
