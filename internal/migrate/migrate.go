// Package migrate aplica o schema embutido (sql/*.sql) registrando cada arquivo
// em schema_migrations com o checksum do conteúdo.
package migrate

import (
	"context"
	"crypto/sha256"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed sql/*.sql
var embedded embed.FS

var ErrChecksumMismatch = errors.New("applied migration was modified")

type Migration struct {
	Name     string // nome do arquivo, define a ordem
	SQL      string
	Checksum string
}

// Applied é uma linha de schema_migrations
type Applied struct {
	Name      string
	Checksum  string
	AppliedAt time.Time
}

type StatusEntry struct {
	Name      string
	Applied   bool
	AppliedAt time.Time
	Modified  bool // checksum do arquivo difere do registrado
}

func checksum(content string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(content)))
}

// Load lê sql/*.sql de fsys em ordem lexicográfica
func Load(fsys fs.FS) ([]Migration, error) {
	names, err := fs.Glob(fsys, "sql/*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, n := range names {
		b, err := fs.ReadFile(fsys, n)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", n, err)
		}
		body := string(b)
		if strings.TrimSpace(body) == "" {
			continue
		}
		out = append(out, Migration{Name: path.Base(n), SQL: body, Checksum: checksum(body)})
	}
	return out, nil
}

// Embedded devolve as migrações compiladas no binário
func Embedded() ([]Migration, error) { return Load(embedded) }

// Pending compara arquivos e registros: devolve o que falta aplicar ou
// ErrChecksumMismatch se um arquivo já aplicado mudou.
func Pending(all []Migration, applied map[string]Applied) ([]Migration, error) {
	var pending []Migration
	for _, m := range all {
		a, ok := applied[m.Name]
		if !ok {
			pending = append(pending, m)
			continue
		}
		if a.Checksum != m.Checksum {
			return nil, fmt.Errorf("%s: %w", m.Name, ErrChecksumMismatch)
		}
	}
	return pending, nil
}

func Compare(all []Migration, applied map[string]Applied) []StatusEntry {
	out := make([]StatusEntry, 0, len(all))
	for _, m := range all {
		e := StatusEntry{Name: m.Name}
		if a, ok := applied[m.Name]; ok {
			e.Applied = true
			e.AppliedAt = a.AppliedAt
			e.Modified = a.Checksum != m.Checksum
		}
		out = append(out, e)
	}
	return out
}

// DB é o subconjunto de *pgx.Conn usado pelo runner
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

func Connect(ctx context.Context, dsn string) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return conn, nil
}

type Runner struct {
	db         DB
	migrations []Migration
}

func NewRunner(db DB, migrations []Migration) *Runner {
	return &Runner{db: db, migrations: migrations}
}

func (r *Runner) ensureTable(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename    TEXT PRIMARY KEY,
			checksum    TEXT NOT NULL,
			duration_ms BIGINT NOT NULL DEFAULT 0,
			applied_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	return nil
}

func (r *Runner) applied(ctx context.Context) (map[string]Applied, error) {
	rows, err := r.db.Query(ctx, `SELECT filename, checksum, applied_at FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("query schema_migrations: %w", err)
	}
	defer rows.Close()

	out := map[string]Applied{}
	for rows.Next() {
		var a Applied
		if err := rows.Scan(&a.Name, &a.Checksum, &a.AppliedAt); err != nil {
			return nil, fmt.Errorf("scan schema_migrations: %w", err)
		}
		out[a.Name] = a
	}
	return out, rows.Err()
}

// Up aplica as migrações pendentes, cada uma na sua transação, e devolve os nomes aplicados
func (r *Runner) Up(ctx context.Context) ([]string, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}
	applied, err := r.applied(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := Pending(r.migrations, applied)
	if err != nil {
		return nil, err
	}

	var done []string
	for _, m := range pending {
		if err := r.apply(ctx, m); err != nil {
			return done, err
		}
		done = append(done, m.Name)
	}
	return done, nil
}

func (r *Runner) apply(ctx context.Context, m Migration) error {
	start := time.Now()
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin %s: %w", m.Name, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, m.SQL); err != nil {
		return fmt.Errorf("apply %s: %w", m.Name, err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO schema_migrations (filename, checksum, duration_ms) VALUES ($1, $2, $3)`,
		m.Name, m.Checksum, time.Since(start).Milliseconds()); err != nil {
		return fmt.Errorf("record %s: %w", m.Name, err)
	}
	return tx.Commit(ctx)
}

func (r *Runner) Status(ctx context.Context) ([]StatusEntry, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}
	applied, err := r.applied(ctx)
	if err != nil {
		return nil, err
	}
	return Compare(r.migrations, applied), nil
}
