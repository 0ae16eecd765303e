package library

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Postgres is a Store backed by a pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// ConnectPostgres creates a pgx pool and runs schema migrations.
func ConnectPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	config.MaxConns = 5
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db := &Postgres{pool: pool}
	if err := db.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	slog.Info("library postgres connected", slog.String("addr", config.ConnConfig.Host))
	return db, nil
}

func (db *Postgres) runMigrations(ctx context.Context) error {
	entries, err := schemaFS.ReadDir("schema")
	if err != nil {
		return fmt.Errorf("read schema dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		data, err := schemaFS.ReadFile("schema/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		if _, err := db.pool.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func (db *Postgres) Save(ctx context.Context, e Entry) (int64, error) {
	e, err := prepare(e)
	if err != nil {
		return 0, err
	}
	var id int64
	err = db.pool.QueryRow(ctx,
		`INSERT INTO transcripts (video_id, language, target, kind, chars, preview, body)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		e.VideoID, e.Language, e.Target, e.Kind, e.Chars, e.Preview, e.Text,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("library: insert: %w", err)
	}
	return id, nil
}

func (db *Postgres) List(ctx context.Context, f ListFilter) ([]Entry, int, error) {
	limit := clampLimit(f.Limit)

	const cols = `id, video_id, language, target, kind, chars, preview, created_at`
	var (
		rows pgx.Rows
		err  error
	)
	if f.VideoID != "" {
		rows, err = db.pool.Query(ctx,
			`SELECT `+cols+` FROM transcripts WHERE video_id = $1 ORDER BY id DESC LIMIT $2`,
			f.VideoID, limit)
	} else {
		rows, err = db.pool.Query(ctx,
			`SELECT `+cols+` FROM transcripts ORDER BY id DESC LIMIT $1`, limit)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("library: query: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var created time.Time
		if err := rows.Scan(&e.ID, &e.VideoID, &e.Language, &e.Target, &e.Kind,
			&e.Chars, &e.Preview, &created); err != nil {
			return nil, 0, fmt.Errorf("library: scan: %w", err)
		}
		e.CreatedAt = created.UTC().Format(time.RFC3339Nano)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("library: rows: %w", err)
	}

	var total int
	if f.VideoID != "" {
		err = db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transcripts WHERE video_id = $1`, f.VideoID).Scan(&total)
	} else {
		err = db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transcripts`).Scan(&total)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("library: count: %w", err)
	}
	return entries, total, nil
}

func (db *Postgres) Get(ctx context.Context, id int64) (*Entry, error) {
	var e Entry
	var created time.Time
	err := db.pool.QueryRow(ctx,
		`SELECT id, video_id, language, target, kind, chars, preview, body, created_at
		 FROM transcripts WHERE id = $1`, id,
	).Scan(&e.ID, &e.VideoID, &e.Language, &e.Target, &e.Kind, &e.Chars, &e.Preview, &e.Text, &created)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("library: get %d: %w", id, err)
	}
	e.CreatedAt = created.UTC().Format(time.RFC3339Nano)
	return &e, nil
}

func (db *Postgres) Close() error {
	db.pool.Close()
	return nil
}
