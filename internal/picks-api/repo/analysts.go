package repo

import (
	"context"

	"github.com/radieske/sports-picks-cms/internal/picks-api/dto"
)

const analystCols = `id, user_id, display_name, bio, avatar_url, twitter_handle, website, win_rate, total_picks, created_at, updated_at`

func scanAnalyst(r rowScanner) (dto.Analyst, error) {
	var a dto.Analyst
	err := r.Scan(&a.ID, &a.UserID, &a.DisplayName, &a.Bio, &a.AvatarURL, &a.TwitterHandle, &a.Website,
		&a.WinRate, &a.TotalPicks, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (p *Postgres) ListAnalysts(ctx context.Context) ([]dto.Analyst, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT `+analystCols+` FROM analyst_profiles ORDER BY display_name`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanAnalyst)
}

func (p *Postgres) CreateAnalyst(ctx context.Context, in dto.AnalystInput) (dto.Analyst, error) {
	total := 0
	if in.TotalPicks != nil {
		total = *in.TotalPicks
	}
	return scanAnalyst(p.db.QueryRowContext(ctx, `
		INSERT INTO analyst_profiles(user_id, display_name, bio, avatar_url, twitter_handle, website, win_rate, total_picks)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING `+analystCols,
		str(in.UserID), str(in.DisplayName), nullIfEmpty(in.Bio), nullIfEmpty(in.AvatarURL),
		nullIfEmpty(in.TwitterHandle), nullIfEmpty(in.Website), in.WinRate, total))
}

func (p *Postgres) UpdateAnalyst(ctx context.Context, id string, in dto.AnalystInput) (dto.Analyst, error) {
	var s setList
	setIf(&s, "user_id", in.UserID)
	setIf(&s, "display_name", in.DisplayName)
	setNullable(&s, "bio", in.Bio)
	setNullable(&s, "avatar_url", in.AvatarURL)
	setNullable(&s, "twitter_handle", in.TwitterHandle)
	setNullable(&s, "website", in.Website)
	setIf(&s, "win_rate", in.WinRate)
	setIf(&s, "total_picks", in.TotalPicks)
	return updateRow(ctx, p.db, "analyst_profiles", analystCols, id, &s, true, scanAnalyst)
}

func (p *Postgres) DeleteAnalyst(ctx context.Context, id string) error {
	return deleteRow(ctx, p.db, "analyst_profiles", id)
}
