package repo

import (
	"context"

	"github.com/radieske/sports-picks-cms/internal/picks-api/dto"
)

const sportCols = `id, name, slug, icon, language, created_at, updated_at`

func scanSport(r rowScanner) (dto.Sport, error) {
	var s dto.Sport
	err := r.Scan(&s.ID, &s.Name, &s.Slug, &s.Icon, &s.Language, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// ListSports ordena por nome; language vazio não filtra
func (p *Postgres) ListSports(ctx context.Context, language string) ([]dto.Sport, error) {
	var w where
	w.eq("language", language)
	rows, err := p.db.QueryContext(ctx, `SELECT `+sportCols+` FROM sports`+w.String()+` ORDER BY name`, w.args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSport)
}

func (p *Postgres) CreateSport(ctx context.Context, in dto.SportInput) (dto.Sport, error) {
	slug := str(in.Slug)
	if slug == "" {
		slug = Slugify(str(in.Name))
	}
	return scanSport(p.db.QueryRowContext(ctx, `
		INSERT INTO sports(name, slug, icon, language)
		VALUES($1,$2,$3,$4)
		RETURNING `+sportCols,
		str(in.Name), slug, nullIfEmpty(in.Icon), orDefault(in.Language, defaultLanguage)))
}

func (p *Postgres) UpdateSport(ctx context.Context, id string, in dto.SportInput) (dto.Sport, error) {
	var s setList
	setIf(&s, "name", in.Name)
	setIf(&s, "slug", in.Slug)
	setNullable(&s, "icon", in.Icon)
	setIf(&s, "language", in.Language)
	return updateRow(ctx, p.db, "sports", sportCols, id, &s, true, scanSport)
}

func (p *Postgres) DeleteSport(ctx context.Context, id string) error {
	return deleteRow(ctx, p.db, "sports", id)
}
