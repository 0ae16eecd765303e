package transcriptserver

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/export"
	"github.com/anatolykoptev/go_transcript/internal/engine/library"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/anatolykoptev/go_transcript/internal/engine/translate"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
	"github.com/anatolykoptev/go_transcript/internal/ytref"
)

// fragmentSep joins caption fragments into transcript text.
const fragmentSep = ". "

// Provider lists and fetches caption tracks. *sources.YouTube implements it.
type Provider interface {
	Languages(ctx context.Context, id ytref.VideoID) ([]sources.Track, error)
	Fetch(ctx context.Context, id ytref.VideoID, code ytref.LanguageCode) ([]sources.Fragment, error)
}

// Service carries the collaborators behind every tool. Nil Translator disables
// translation; nil Library skips recording.
type Service struct {
	Resolver    ytref.Resolver
	Provider    Provider
	Translator  translate.Translator
	Catalog     *ytref.Catalog
	Library     library.Store
	DownloadDir string
	MaxChars    int // 0 = unlimited
}

// Transcript is a fetched (and possibly translated) transcript.
type Transcript struct {
	VideoID   ytref.VideoID      `json:"video_id"`
	Language  ytref.LanguageCode `json:"language"`
	Target    ytref.LanguageCode `json:"target,omitempty"`
	Text      string             `json:"text"`
	Fragments int                `json:"fragments"`
	Truncated bool               `json:"truncated,omitempty"`
}

// cachedText is the cached form of a fetched transcript.
type cachedText struct {
	Text      string `json:"text"`
	Fragments int    `json:"fragments"`
}

// Resolve extracts the video id from rawURL.
func (s *Service) Resolve(rawURL string) (ytref.VideoID, error) {
	id, err := s.Resolver.Resolve(rawURL)
	engine.IncrResolve(err != nil)
	return id, err
}

// Languages lists the caption tracks of the video at rawURL.
func (s *Service) Languages(ctx context.Context, rawURL string) (ytref.VideoID, []sources.Track, error) {
	id, err := s.Resolve(rawURL)
	if err != nil {
		return "", nil, err
	}
	tracks, err := s.tracks(ctx, id)
	return id, tracks, err
}

func (s *Service) tracks(ctx context.Context, id ytref.VideoID) ([]sources.Track, error) {
	return toolutil.Cached(ctx, engine.CacheKey("languages", string(id)), func() ([]sources.Track, error) {
		return s.Provider.Languages(ctx, id)
	})
}

// Transcript resolves rawURL, negotiates language against the video's tracks and
// returns the joined transcript text.
func (s *Service) Transcript(ctx context.Context, rawURL, language string) (*Transcript, error) {
	var t *Transcript
	err := engine.TrackOperation(ctx, "transcript", func(ctx context.Context) error {
		var err error
		t, err = s.transcript(ctx, rawURL, language)
		return err
	})
	return t, err
}

func (s *Service) transcript(ctx context.Context, rawURL, language string) (*Transcript, error) {
	id, err := s.Resolve(rawURL)
	if err != nil {
		return nil, err
	}
	code, err := s.negotiate(ctx, id, toolutil.NormLang(language))
	if err != nil {
		return nil, err
	}

	fetched, err := toolutil.Cached(ctx, engine.CacheKey("transcript", string(id), string(code)), func() (cachedText, error) {
		frags, err := s.Provider.Fetch(ctx, id, code)
		if err != nil {
			return cachedText{}, err
		}
		return cachedText{Text: sources.JoinFragments(frags, fragmentSep), Fragments: len(frags)}, nil
	})
	if err != nil {
		return nil, err
	}

	t := &Transcript{VideoID: id, Language: code, Text: fetched.Text, Fragments: fetched.Fragments}
	s.truncate(t)
	s.record(ctx, library.Entry{
		VideoID:  string(id),
		Language: string(code),
		Kind:     library.KindTranscript,
		Text:     t.Text,
	})
	return t, nil
}

// negotiate picks the track for requested among the video's available tracks.
func (s *Service) negotiate(ctx context.Context, id ytref.VideoID, requested string) (ytref.LanguageCode, error) {
	tracks, err := s.tracks(ctx, id)
	if err != nil {
		return "", err
	}
	return ytref.Negotiate(sources.Codes(tracks), requested, s.Catalog)
}

// Translate fetches the transcript in language and translates it into target,
// given as a catalog code or display name.
func (s *Service) Translate(ctx context.Context, rawURL, language, target string) (*Transcript, error) {
	var t *Transcript
	err := engine.TrackOperation(ctx, "translate", func(ctx context.Context) error {
		var err error
		t, err = s.translate(ctx, rawURL, language, target)
		return err
	})
	return t, err
}

func (s *Service) translate(ctx context.Context, rawURL, language, target string) (*Transcript, error) {
	if s.Translator == nil {
		return nil, engine.ErrLLMDisabled
	}
	if err := toolutil.Required("target", target); err != nil {
		return nil, err
	}
	targetCode, err := s.Catalog.CodeFor(target)
	if err != nil {
		return nil, err
	}

	src, err := s.transcript(ctx, rawURL, language)
	if err != nil {
		return nil, err
	}

	key := engine.CacheKey("translate", string(src.VideoID), string(src.Language), string(targetCode))
	text, err := toolutil.Cached(ctx, key, func() (string, error) {
		return s.Translator.Translate(ctx, src.Text, src.Language, targetCode)
	})
	if err != nil {
		return nil, err
	}

	t := &Transcript{
		VideoID:   src.VideoID,
		Language:  src.Language,
		Target:    targetCode,
		Text:      text,
		Fragments: src.Fragments,
		Truncated: src.Truncated,
	}
	s.record(ctx, library.Entry{
		VideoID:  string(t.VideoID),
		Language: string(t.Language),
		Target:   string(targetCode),
		Kind:     library.KindTranslation,
		Text:     text,
	})
	return t, nil
}

// Download writes the transcript, or its translation when target is set, to the
// download directory.
func (s *Service) Download(ctx context.Context, rawURL, language, target, name, format string) (*export.Result, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	var t *Transcript
	if strings.TrimSpace(target) != "" {
		t, err = s.Translate(ctx, rawURL, language, target)
		if name == "" {
			name = export.DefaultTranslatedName
		}
	} else {
		t, err = s.Transcript(ctx, rawURL, language)
		if name == "" {
			name = export.DefaultName
		}
	}
	if err != nil {
		return nil, err
	}
	return export.Write(s.DownloadDir, name, t.Text, f)
}

// History lists saved transcripts, optionally for the video at rawURL.
func (s *Service) History(ctx context.Context, rawURL string, limit int) ([]library.Entry, int, error) {
	if s.Library == nil {
		return nil, 0, errLibraryDisabled
	}
	var f library.ListFilter
	f.Limit = toolutil.NormLimit(limit, 20, 100)
	if strings.TrimSpace(rawURL) != "" {
		id, err := s.Resolve(rawURL)
		if err != nil {
			return nil, 0, err
		}
		f.VideoID = string(id)
	}
	return s.Library.List(ctx, f)
}

// Saved returns one saved transcript with its full text.
func (s *Service) Saved(ctx context.Context, id int64) (*library.Entry, error) {
	if s.Library == nil {
		return nil, errLibraryDisabled
	}
	return s.Library.Get(ctx, id)
}

// CatalogEntries returns catalog languages whose code or name contains query (case-insensitive).
func (s *Service) CatalogEntries(query string) []ytref.CatalogEntry {
	all := s.Catalog.Entries()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all
	}
	out := make([]ytref.CatalogEntry, 0, len(all))
	for _, e := range all {
		if strings.Contains(strings.ToLower(string(e.Code)), q) || strings.Contains(strings.ToLower(e.Name), q) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Service) truncate(t *Transcript) {
	if s.MaxChars <= 0 {
		return
	}
	cut := engine.TruncateAtWord(t.Text, s.MaxChars)
	t.Truncated = cut != t.Text
	t.Text = cut
}

// record saves e to the library. Failures are logged, never returned.
func (s *Service) record(ctx context.Context, e library.Entry) {
	if s.Library == nil {
		return
	}
	if _, err := s.Library.Save(ctx, e); err != nil {
		slog.Warn("library: save failed",
			slog.String("video", e.VideoID), slog.String("kind", e.Kind), slog.Any("error", err))
	}
}

var errLibraryDisabled = errors.New("transcript library is not configured")
