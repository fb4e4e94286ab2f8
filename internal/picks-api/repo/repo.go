package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Postgres implementa o acesso a dados do CMS
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

var (
	ErrNotFound           = errors.New("not found")
	ErrMarketTypeRequired = errors.New("Either market_type_id or market_type_name is required")
)

const defaultLanguage = "en"

// queryer é satisfeito por *sql.DB e *sql.Tx
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify: minúsculas, sequências fora de [a-z0-9] viram "-", sem "-" nas pontas
func Slugify(s string) string {
	return strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// where acumula condições AND com placeholders numerados
type where struct {
	conds []string
	args  []any
}

// add recebe um formato com %[1]d no lugar do número do placeholder
func (w *where) add(format string, v any) {
	w.args = append(w.args, v)
	w.conds = append(w.conds, fmt.Sprintf(format, len(w.args)))
}

func (w *where) eq(col, v string) {
	if v != "" {
		w.add(col+" = $%[1]d", v)
	}
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page adiciona LIMIT/OFFSET no fim dos argumentos
func (w *where) page(limit, offset int) (string, []any) {
	args := append(append([]any{}, w.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}

// setList monta o SET de um UPDATE parcial
type setList struct {
	cols []string
	args []any
}

func (s *setList) add(col string, v any) {
	s.args = append(s.args, v)
	s.cols = append(s.cols, fmt.Sprintf("%s = $%d", col, len(s.args)))
}

func (s *setList) empty() bool { return len(s.cols) == 0 }

func setIf[T any](s *setList, col string, v *T) {
	if v != nil {
		s.add(col, *v)
	}
}

// setNullable grava NULL quando o valor vem vazio
func setNullable(s *setList, col string, v *string) {
	if v != nil {
		s.add(col, nullIfEmpty(v))
	}
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func nullIfEmpty(p *string) any {
	if p == nil || strings.TrimSpace(*p) == "" {
		return nil
	}
	return *p
}

func orDefault(p *string, def string) string {
	if v := str(p); v != "" {
		return v
	}
	return def
}

// updateRow aplica o SET e devolve a linha atualizada; sem campos, só relê a linha
func updateRow[T any](ctx context.Context, q queryer, table, cols, id string, s *setList, touch bool, scan func(rowScanner) (T, error)) (T, error) {
	var row *sql.Row
	if s.empty() {
		row = q.QueryRowContext(ctx, `SELECT `+cols+` FROM `+table+` WHERE id = $1`, id)
	} else {
		set := strings.Join(s.cols, ", ")
		if touch {
			set += ", updated_at = now()"
		}
		args := append(append([]any{}, s.args...), id)
		row = q.QueryRowContext(ctx,
			fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d RETURNING %s`, table, set, len(args), cols), args...)
	}
	out, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return out, ErrNotFound
	}
	return out, err
}

func deleteRow(ctx context.Context, q queryer, table, id string) error {
	res, err := q.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func count(ctx context.Context, q queryer, query string, args ...any) (int, error) {
	var n int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func collect[T any](rows *sql.Rows, scan func(rowScanner) (T, error)) ([]T, error) {
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
