package transcriptserver

import (
	"github.com/anatolykoptev/go_transcript/internal/engine/library"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/anatolykoptev/go_transcript/internal/ytref"
)

// ResolveInput is the input for resolve_video.
type ResolveInput struct {
	URL string `json:"url" jsonschema:"YouTube video URL (youtube.com/watch?v=... or youtu.be/...)"`
}

// ResolveOutput is the output for resolve_video.
type ResolveOutput struct {
	VideoID ytref.VideoID `json:"video_id"`
}

// LanguagesInput is the input for transcript_languages.
type LanguagesInput struct {
	URL string `json:"url" jsonschema:"YouTube video URL"`
}

// LanguagesOutput is the output for transcript_languages.
type LanguagesOutput struct {
	VideoID ytref.VideoID   `json:"video_id"`
	Tracks  []sources.Track `json:"tracks"`
}

// TranscriptInput is the input for transcript_fetch.
type TranscriptInput struct {
	URL      string `json:"url" jsonschema:"YouTube video URL"`
	Language string `json:"language,omitempty" jsonschema:"Transcript language as a code (en, es) or name (Spanish). Default: en"`
}

// TranslateInput is the input for transcript_translate.
type TranslateInput struct {
	URL      string `json:"url" jsonschema:"YouTube video URL"`
	Language string `json:"language,omitempty" jsonschema:"Source transcript language as a code or name. Default: en"`
	Target   string `json:"target" jsonschema:"Target language as a code (fr, zh-cn) or name (French)"`
}

// DownloadInput is the input for transcript_download.
type DownloadInput struct {
	URL      string `json:"url" jsonschema:"YouTube video URL"`
	Language string `json:"language,omitempty" jsonschema:"Transcript language as a code or name. Default: en"`
	Target   string `json:"target,omitempty" jsonschema:"Translate into this language before saving (optional)"`
	Name     string `json:"name,omitempty" jsonschema:"File name without extension. Default: Transcript or Translated_Transcript"`
	Format   string `json:"format,omitempty" jsonschema:"File format: txt (default) or md"`
}

// HistoryInput is the input for transcript_history.
type HistoryInput struct {
	URL   string `json:"url,omitempty" jsonschema:"Only entries for this video (optional)"`
	ID    int64  `json:"id,omitempty" jsonschema:"Return one saved entry with its full text"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max entries (default 20, max 100)"`
}

// HistoryOutput is the output for transcript_history.
type HistoryOutput struct {
	Entries []library.Entry `json:"entries"`
	Total   int             `json:"total"`
}

// CatalogInput is the input for language_catalog.
type CatalogInput struct {
	Query string `json:"query,omitempty" jsonschema:"Filter by code or name substring (optional)"`
}

// CatalogOutput is the output for language_catalog.
type CatalogOutput struct {
	Languages []ytref.CatalogEntry `json:"languages"`
	Total     int                  `json:"total"`
}
