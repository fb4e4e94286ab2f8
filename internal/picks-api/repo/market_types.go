package repo

import (
	"context"

	"github.com/radieske/sports-picks-cms/internal/picks-api/dto"
)

const marketTypeCols = `id, name, slug, sport_id, language, created_at`

func scanMarketType(r rowScanner) (dto.MarketType, error) {
	var m dto.MarketType
	err := r.Scan(&m.ID, &m.Name, &m.Slug, &m.SportID, &m.Language, &m.CreatedAt)
	return m, err
}

func (p *Postgres) ListMarketTypes(ctx context.Context, sportID, language string) ([]dto.MarketType, error) {
	var w where
	w.eq("sport_id", sportID)
	w.eq("language", language)
	rows, err := p.db.QueryContext(ctx, `SELECT `+marketTypeCols+` FROM market_types`+w.String()+` ORDER BY name`, w.args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanMarketType)
}

func (p *Postgres) CreateMarketType(ctx context.Context, in dto.MarketTypeInput) (dto.MarketType, error) {
	slug := str(in.Slug)
	if slug == "" {
		slug = Slugify(str(in.Name))
	}
	return scanMarketType(p.db.QueryRowContext(ctx, `
		INSERT INTO market_types(name, slug, sport_id, language)
		VALUES($1,$2,$3,$4)
		RETURNING `+marketTypeCols,
		str(in.Name), slug, nullIfEmpty(in.SportID), orDefault(in.Language, defaultLanguage)))
}

func (p *Postgres) DeleteMarketType(ctx context.Context, id string) error {
	return deleteRow(ctx, p.db, "market_types", id)
}

// findOrCreateMarketType resolve o mercado pelo nome (único), criando se não existir
func findOrCreateMarketType(ctx context.Context, q queryer, name, language string) (string, error) {
	var id string
	err := q.QueryRowContext(ctx, `
		INSERT INTO market_types(name, slug, language)
		VALUES($1,$2,$3)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`, name, Slugify(name), language).Scan(&id)
	return id, err
}
