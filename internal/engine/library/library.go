// Package library records fetched and translated transcripts so they can be
// listed and re-read later. SQLite is the default backend, Postgres the shared one.
package library

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// Kinds of saved entries.
const (
	KindTranscript  = "transcript"
	KindTranslation = "translation"
)

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("library: entry not found")

// Entry is one saved transcript.
type Entry struct {
	ID        int64  `json:"id"`
	VideoID   string `json:"video_id"`
	Language  string `json:"language"`
	Target    string `json:"target,omitempty"`
	Kind      string `json:"kind"`
	Chars     int    `json:"chars"`
	Preview   string `json:"preview"`
	Text      string `json:"text,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ListFilter narrows List. Zero value lists the newest entries.
type ListFilter struct {
	VideoID string
	Limit   int
}

// Store persists entries.
type Store interface {
	Save(ctx context.Context, e Entry) (int64, error)
	// List returns entries newest first, without Text, and the total matching count.
	List(ctx context.Context, f ListFilter) ([]Entry, int, error)
	Get(ctx context.Context, id int64) (*Entry, error)
	Close() error
}

const previewRunes = 160

// prepare fills derived fields before an insert.
func prepare(e Entry) (Entry, error) {
	if strings.TrimSpace(e.VideoID) == "" {
		return e, errors.New("library: video id is required")
	}
	if e.Kind == "" {
		e.Kind = KindTranscript
	}
	if e.Kind != KindTranscript && e.Kind != KindTranslation {
		return e, errors.New("library: invalid kind " + e.Kind)
	}
	e.Chars = utf8.RuneCountInString(e.Text)
	e.Preview = preview(e.Text)
	return e, nil
}

func preview(text string) string {
	return engine.TruncateRunes(strings.TrimSpace(text), previewRunes, "...")
}

func clampLimit(n int) int {
	if n <= 0 || n > 100 {
		return 20
	}
	return n
}
