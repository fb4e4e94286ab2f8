package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"github.com/radieske/sports-picks-cms/internal/picks-api/dto"
)

const siteCols = `id, name, slug, domain, logo_url, primary_color, display_name, categories, language, is_active, created_at, updated_at`

func scanSite(r rowScanner) (dto.Site, error) {
	var s dto.Site
	err := r.Scan(&s.ID, &s.Name, &s.Slug, &s.Domain, &s.LogoURL, &s.PrimaryColor, &s.DisplayName,
		pq.Array(&s.Categories), &s.Language, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if s.Categories == nil {
		s.Categories = []string{}
	}
	return s, err
}

// ListSites devolve os sites; activeOnly esconde os desativados (visão pública)
func (p *Postgres) ListSites(ctx context.Context, activeOnly bool) ([]dto.Site, error) {
	q := `SELECT ` + siteCols + ` FROM sites`
	if activeOnly {
		q += ` WHERE is_active`
	}
	rows, err := p.db.QueryContext(ctx, q+` ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSite)
}

// ResolveSite devolve o site ativo do domínio ou, sem correspondência, o primeiro ativo
func (p *Postgres) ResolveSite(ctx context.Context, domain string) (dto.Site, error) {
	s, err := scanSite(p.db.QueryRowContext(ctx, `
		SELECT `+siteCols+`
		FROM sites
		WHERE is_active
		ORDER BY COALESCE(domain = $1, false) DESC, name
		LIMIT 1`, domain))
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrNotFound
	}
	return s, err
}

func (p *Postgres) CreateSite(ctx context.Context, in dto.SiteInput) (dto.Site, error) {
	cats := []string{}
	if in.Categories != nil {
		cats = *in.Categories
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return scanSite(p.db.QueryRowContext(ctx, `
		INSERT INTO sites(name, slug, domain, logo_url, primary_color, display_name, categories, language, is_active)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING `+siteCols,
		str(in.Name), str(in.Slug), nullIfEmpty(in.Domain), nullIfEmpty(in.LogoURL), nullIfEmpty(in.PrimaryColor),
		nullIfEmpty(in.DisplayName), pq.Array(cats), orDefault(in.Language, defaultLanguage), active))
}

func (p *Postgres) UpdateSite(ctx context.Context, id string, in dto.SiteInput) (dto.Site, error) {
	var s setList
	setIf(&s, "name", in.Name)
	setIf(&s, "slug", in.Slug)
	setNullable(&s, "domain", in.Domain)
	setNullable(&s, "logo_url", in.LogoURL)
	setNullable(&s, "primary_color", in.PrimaryColor)
	setNullable(&s, "display_name", in.DisplayName)
	if in.Categories != nil {
		s.add("categories", pq.Array([]string(*in.Categories)))
	}
	setIf(&s, "language", in.Language)
	setIf(&s, "is_active", in.IsActive)
	return updateRow(ctx, p.db, "sites", siteCols, id, &s, true, scanSite)
}

func (p *Postgres) DeleteSite(ctx context.Context, id string) error {
	return deleteRow(ctx, p.db, "sites", id)
}

// MatchesCategory: site sem categorias aceita tudo; senão basta uma categoria
// conter a outra (sem diferenciar maiúsculas)
func MatchesCategory(site dto.Site, category string) bool {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" || len(site.Categories) == 0 {
		return true
	}
	for _, k := range site.Categories {
		k = strings.ToLower(k)
		if strings.Contains(k, c) || strings.Contains(c, k) {
			return true
		}
	}
	return false
}

func FilterByCategory(sites []dto.Site, category string) []dto.Site {
	out := make([]dto.Site, 0, len(sites))
	for _, s := range sites {
		if MatchesCategory(s, category) {
			out = append(out, s)
		}
	}
	return out
}
