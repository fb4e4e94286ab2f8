package repo

import (
	"context"

	"github.com/radieske/sports-picks-cms/internal/picks-api/dto"
)

const bookmakerCols = `id, name, slug, logo_url, affiliate_link, affiliate_params, is_active, created_at, updated_at`

func scanBookmaker(r rowScanner) (dto.Bookmaker, error) {
	var (
		b      dto.Bookmaker
		params []byte
	)
	err := r.Scan(&b.ID, &b.Name, &b.Slug, &b.LogoURL, &b.AffiliateLink, &params, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if len(params) > 0 {
		b.AffiliateParams = params
	}
	return b, err
}

// ListPublicBookmakers lê a view sem parâmetros de afiliado
func (p *Postgres) ListPublicBookmakers(ctx context.Context) ([]dto.BookmakerPublic, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, name, slug, logo_url, is_active, created_at, updated_at
		FROM bookmakers_public
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(r rowScanner) (dto.BookmakerPublic, error) {
		var b dto.BookmakerPublic
		err := r.Scan(&b.ID, &b.Name, &b.Slug, &b.LogoURL, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
		return b, err
	})
}

func (p *Postgres) ListBookmakers(ctx context.Context) ([]dto.Bookmaker, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT `+bookmakerCols+` FROM bookmakers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanBookmaker)
}

func (p *Postgres) CreateBookmaker(ctx context.Context, in dto.BookmakerInput) (dto.Bookmaker, error) {
	slug := str(in.Slug)
	if slug == "" {
		slug = Slugify(str(in.Name))
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return scanBookmaker(p.db.QueryRowContext(ctx, `
		INSERT INTO bookmakers(name, slug, logo_url, affiliate_link, affiliate_params, is_active)
		VALUES($1,$2,$3,$4,$5,$6)
		RETURNING `+bookmakerCols,
		str(in.Name), slug, nullIfEmpty(in.LogoURL), nullIfEmpty(in.AffiliateLink), jsonParam(in.AffiliateParams), active))
}

func (p *Postgres) UpdateBookmaker(ctx context.Context, id string, in dto.BookmakerInput) (dto.Bookmaker, error) {
	var s setList
	setIf(&s, "name", in.Name)
	if in.Slug != nil {
		slug := str(in.Slug)
		if slug == "" && in.Name != nil {
			slug = Slugify(*in.Name)
		}
		if slug != "" {
			s.add("slug", slug)
		}
	}
	setNullable(&s, "logo_url", in.LogoURL)
	setNullable(&s, "affiliate_link", in.AffiliateLink)
	if in.AffiliateParams != nil {
		s.add("affiliate_params", jsonParam(in.AffiliateParams))
	}
	setIf(&s, "is_active", in.IsActive)
	return updateRow(ctx, p.db, "bookmakers", bookmakerCols, id, &s, true, scanBookmaker)
}

func (p *Postgres) DeleteBookmaker(ctx context.Context, id string) error {
	return deleteRow(ctx, p.db, "bookmakers", id)
}

// jsonParam converte o JSON cru para o parâmetro jsonb (null vira NULL)
func jsonParam(raw []byte) any {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return string(raw)
}
