package toolutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

func TestNormLang(t *testing.T) {
	assert.Equal(t, "en", NormLang(""))
	assert.Equal(t, "en", NormLang("  "))
	assert.Equal(t, "French", NormLang(" French "))
}

func TestNormLimit(t *testing.T) {
	assert.Equal(t, 20, NormLimit(0, 20, 100))
	assert.Equal(t, 20, NormLimit(500, 20, 100))
	assert.Equal(t, 7, NormLimit(7, 20, 100))
}

func TestRequired(t *testing.T) {
	assert.EqualError(t, Required("url", " "), "url is required")
	assert.NoError(t, Required("url", "x"))
}

func TestCached(t *testing.T) {
	engine.InitCache("", time.Minute, 100, time.Hour)
	ctx := context.Background()
	key := engine.CacheKey("toolutil-test", t.Name())

	calls := 0
	fn := func() ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}
	v, err := Cached(ctx, key, fn)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v)

	v, err = Cached(ctx, key, fn)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v)
	assert.Equal(t, 1, calls)

	errKey := engine.CacheKey("toolutil-test", t.Name(), "err")
	boom := errors.New("boom")
	_, err = Cached(ctx, errKey, func() (int, error) { calls++; return 0, boom })
	assert.ErrorIs(t, err, boom)
	_, err = Cached(ctx, errKey, func() (int, error) { calls++; return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls, "errors are not cached")
}
