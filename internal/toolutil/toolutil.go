// Package toolutil provides shared helper functions for go_transcript MCP tools.
package toolutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// DefaultLanguage is used when a tool call names no language.
const DefaultLanguage = "en"

// NormLang normalises a language field: empty string → DefaultLanguage.
func NormLang(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return DefaultLanguage
	}
	return lang
}

// NormLimit clamps a list limit into 1..maxN, using def for zero or out-of-range values.
func NormLimit(n, def, maxN int) int {
	if n <= 0 || n > maxN {
		return def
	}
	return n
}

// Required returns an error naming field when value is blank.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// Cached returns the value stored under key, or runs fn and caches a successful result.
// Errors are never cached.
func Cached[T any](ctx context.Context, key string, fn func() (T, error)) (T, error) {
	if v, ok := engine.CacheLoadJSON[T](ctx, key); ok {
		return v, nil
	}
	v, err := fn()
	if err != nil {
		return v, err
	}
	engine.CacheStoreJSON(ctx, key, v)
	return v, nil
}
