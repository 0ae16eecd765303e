package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/time/rate"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/ytref"
)

// CompleteFunc sends one system + user prompt to a model. engine.CallLLM satisfies it.
type CompleteFunc func(ctx context.Context, system, prompt string) (string, error)

// LLMOptions tunes an LLM translator. Zero fields take defaults.
type LLMOptions struct {
	ChunkRunes   int           // max runes per request; default 3000
	RPS          float64       // request rate; <= 0 means unlimited
	MaxTries     uint          // attempts per chunk; default 3
	RetryInitial time.Duration // first backoff interval; default 500ms
	Catalog      *ytref.Catalog
}

// LLM translates transcripts chunk by chunk through a language model.
type LLM struct {
	complete CompleteFunc
	limiter  *rate.Limiter
	opts     LLMOptions
}

var errEmptyTranslation = errors.New("translate: empty model response")

// NewLLM returns a translator that calls complete for every chunk.
func NewLLM(complete CompleteFunc, opts LLMOptions) *LLM {
	if opts.ChunkRunes <= 0 {
		opts.ChunkRunes = 3000
	}
	if opts.MaxTries == 0 {
		opts.MaxTries = 3
	}
	if opts.RetryInitial <= 0 {
		opts.RetryInitial = 500 * time.Millisecond
	}
	if opts.Catalog == nil {
		opts.Catalog = DefaultCatalog()
	}
	limit := rate.Inf
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
	}
	return &LLM{
		complete: complete,
		limiter:  rate.NewLimiter(limit, 1),
		opts:     opts,
	}
}

// Translate translates text into target. When source is empty it is detected from
// the text; when source and target match, text is returned untouched.
func (t *LLM) Translate(ctx context.Context, text string, source, target ytref.LanguageCode) (string, error) {
	engine.IncrTranslate()
	out, err := t.translate(ctx, text, source, target)
	if err != nil {
		engine.IncrTranslateErr()
		return "", err
	}
	return out, nil
}

func (t *LLM) translate(ctx context.Context, text string, source, target ytref.LanguageCode) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	if target == "" {
		return "", errors.New("translate: empty target language")
	}
	if source == "" {
		source = DetectLanguage(text)
	}
	if sameLanguage(source, target) {
		return text, nil
	}

	chunks := SplitChunks(text, t.opts.ChunkRunes)
	out := make([]string, 0, len(chunks))
	from, to := t.languageName(source), t.languageName(target)
	for i, chunk := range chunks {
		if err := t.limiter.Wait(ctx); err != nil {
			return "", err
		}
		res, err := t.chunk(ctx, chunk, from, to)
		if err != nil {
			return "", fmt.Errorf("translate chunk %d/%d: %w", i+1, len(chunks), err)
		}
		out = append(out, res)
	}
	slog.Debug("translate: done",
		slog.String("from", string(source)), slog.String("to", string(target)),
		slog.Int("chunks", len(chunks)))
	return strings.Join(out, " "), nil
}

func (t *LLM) chunk(ctx context.Context, chunk, from, to string) (string, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = t.opts.RetryInitial

	prompt := fmt.Sprintf(translatePrompt, from, to, chunk)
	op := func() (string, error) {
		res, err := t.complete(ctx, translateSystem, prompt)
		if err != nil {
			if errors.Is(err, engine.ErrLLMDisabled) || ctx.Err() != nil {
				return "", backoff.Permanent(err)
			}
			slog.Warn("translate: llm call failed, retrying", slog.Any("error", err))
			return "", err
		}
		res = strings.TrimSpace(res)
		if res == "" {
			return "", errEmptyTranslation
		}
		return res, nil
	}
	return backoff.Retry(ctx, op,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(t.opts.MaxTries),
	)
}

// languageName renders code for the prompt: the catalog name when known.
func (t *LLM) languageName(code ytref.LanguageCode) string {
	if code == "" {
		return "the source language"
	}
	if name, ok := t.opts.Catalog.Name(code); ok {
		return name
	}
	return string(code)
}

// sameLanguage reports whether a and b name the same language. A bare code matches
// its regional variants ("en" and "en-US"); two distinct regions do not ("zh-cn", "zh-tw").
func sameLanguage(a, b ytref.LanguageCode) bool {
	if a == "" || b == "" {
		return false
	}
	if strings.EqualFold(string(a), string(b)) {
		return true
	}
	pa, ra := splitSubtag(a)
	pb, rb := splitSubtag(b)
	return strings.EqualFold(pa, pb) && (ra == "" || rb == "")
}

func splitSubtag(c ytref.LanguageCode) (primary, region string) {
	s := string(c)
	if i := strings.IndexAny(s, "-_"); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}
