package transcriptserver

import (
	"errors"
	"fmt"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/library"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/anatolykoptev/go_transcript/internal/ytref"
)

// toolError rewords a failure for the tool caller. The cause stays reachable
// through errors.Is.
func toolError(err error) error {
	if err == nil {
		return nil
	}
	var f *ytref.Failure
	switch {
	case errors.As(err, &f) && f.Kind == ytref.InvalidURL:
		return fmt.Errorf("invalid YouTube URL format: %q: %w", f.Input, err)
	case errors.As(err, &f) && f.Kind == ytref.LanguageUnavailable:
		return fmt.Errorf("requested language %q is not available for this video (see transcript_languages): %w", f.Input, err)
	case errors.As(err, &f) && f.Kind == ytref.CatalogLookupFailed:
		return fmt.Errorf("language %q not found in catalog (see language_catalog): %w", f.Input, err)
	case errors.Is(err, sources.ErrTranscriptsDisabled):
		return fmt.Errorf("transcripts are disabled for this video: %w", err)
	case errors.Is(err, sources.ErrNoTranscript):
		return fmt.Errorf("no transcript found for the requested language: %w", err)
	case errors.Is(err, sources.ErrVideoNotFound):
		return fmt.Errorf("video not found or unavailable: %w", err)
	case errors.Is(err, engine.ErrLLMDisabled):
		return fmt.Errorf("translation is not configured: %w", err)
	case errors.Is(err, library.ErrNotFound):
		return fmt.Errorf("no saved transcript with that id: %w", err)
	}
	return err
}
