package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// Postgres guarda tokens em api_tokens e papéis em user_roles
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

func (p *Postgres) LookupToken(ctx context.Context, tokenID string) (TokenRecord, error) {
	var rec TokenRecord
	err := p.db.QueryRowContext(ctx, `
		SELECT t.user_id, t.token_hash,
		       COALESCE(array_agg(r.role::text) FILTER (WHERE r.role IS NOT NULL), '{}')
		FROM api_tokens t
		LEFT JOIN user_roles r ON r.user_id = t.user_id
		WHERE t.id = $1
		GROUP BY t.id, t.user_id, t.token_hash`, tokenID).
		Scan(&rec.UserID, &rec.Hash, pq.Array(&rec.Roles))
	if errors.Is(err, sql.ErrNoRows) {
		return rec, ErrUnauthorized
	}
	if err != nil {
		return rec, err
	}
	// last_used_at é informativo; erro aqui não invalida o token
	_, _ = p.db.ExecContext(ctx, `UPDATE api_tokens SET last_used_at = now() WHERE id = $1`, tokenID)
	return rec, nil
}

func (p *Postgres) CreateToken(ctx context.Context, userID, label, hash string) (string, error) {
	var id string
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO api_tokens(user_id, token_hash, label)
		VALUES($1,$2,NULLIF($3,''))
		RETURNING id`, userID, hash, label).Scan(&id)
	return id, err
}

func (p *Postgres) GrantRole(ctx context.Context, userID, role string) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO user_roles(user_id, role)
		VALUES($1,$2)
		ON CONFLICT (user_id, role) DO NOTHING`, userID, role)
	return err
}
