package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite is a Store backed by a local SQLite file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the library database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("library: mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("library: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if err := initSQLiteSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("library: init schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func initSQLiteSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS transcripts (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		video_id   TEXT NOT NULL,
		language   TEXT NOT NULL,
		target     TEXT,
		kind       TEXT NOT NULL DEFAULT 'transcript',
		chars      INTEGER NOT NULL DEFAULT 0,
		preview    TEXT,
		body       TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS transcripts_video_idx ON transcripts (video_id)`)
	return err
}

func (s *SQLite) Save(ctx context.Context, e Entry) (int64, error) {
	e, err := prepare(e)
	if err != nil {
		return 0, err
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO transcripts (video_id, language, target, kind, chars, preview, body, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.VideoID, e.Language, e.Target, e.Kind, e.Chars, e.Preview, e.Text, now,
	)
	if err != nil {
		return 0, fmt.Errorf("library: insert: %w", err)
	}
	return res.LastInsertId()
}

func (s *SQLite) List(ctx context.Context, f ListFilter) ([]Entry, int, error) {
	limit := clampLimit(f.Limit)

	var (
		rows *sql.Rows
		err  error
	)
	if f.VideoID != "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, video_id, language, target, kind, chars, preview, created_at
			 FROM transcripts WHERE video_id = ? ORDER BY id DESC LIMIT ?`,
			f.VideoID, limit,
		)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, video_id, language, target, kind, chars, preview, created_at
			 FROM transcripts ORDER BY id DESC LIMIT ?`,
			limit,
		)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("library: query: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var target, preview sql.NullString
		if err := rows.Scan(&e.ID, &e.VideoID, &e.Language, &target, &e.Kind,
			&e.Chars, &preview, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("library: scan: %w", err)
		}
		e.Target = target.String
		e.Preview = preview.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("library: rows: %w", err)
	}

	var total int
	if f.VideoID != "" {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transcripts WHERE video_id = ?`, f.VideoID).Scan(&total)
	} else {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transcripts`).Scan(&total)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("library: count: %w", err)
	}
	return entries, total, nil
}

func (s *SQLite) Get(ctx context.Context, id int64) (*Entry, error) {
	var e Entry
	var target, preview sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, video_id, language, target, kind, chars, preview, body, created_at
		 FROM transcripts WHERE id = ?`, id,
	).Scan(&e.ID, &e.VideoID, &e.Language, &target, &e.Kind, &e.Chars, &preview, &e.Text, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("library: get %d: %w", id, err)
	}
	e.Target = target.String
	e.Preview = preview.String
	return &e, nil
}

func (s *SQLite) Close() error { return s.db.Close() }
