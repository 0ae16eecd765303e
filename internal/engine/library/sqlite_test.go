package library

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "sub", "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_SaveGet(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	id, err := s.Save(ctx, Entry{VideoID: "abc", Language: "en", Text: "Hello. World"})
	require.NoError(t, err)
	assert.Positive(t, id)

	e, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "abc", e.VideoID)
	assert.Equal(t, KindTranscript, e.Kind)
	assert.Equal(t, "Hello. World", e.Text)
	assert.Equal(t, 12, e.Chars)
	assert.NotEmpty(t, e.CreatedAt)

	_, err = s.Get(ctx, id+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_List(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	long := strings.Repeat("ж", 300)
	for _, e := range []Entry{
		{VideoID: "a", Language: "en", Text: "first"},
		{VideoID: "b", Language: "de", Text: "second"},
		{VideoID: "a", Language: "en", Target: "fr", Kind: KindTranslation, Text: long},
	} {
		_, err := s.Save(ctx, e)
		require.NoError(t, err)
	}

	all, total, err := s.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, all, 3)
	assert.Equal(t, "fr", all[0].Target, "newest first")
	assert.Empty(t, all[0].Text, "list omits bodies")
	assert.Equal(t, 300, all[0].Chars)
	assert.True(t, strings.HasSuffix(all[0].Preview, "..."))

	onlyA, total, err := s.List(ctx, ListFilter{VideoID: "a", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, onlyA, 1)
	assert.Equal(t, KindTranslation, onlyA[0].Kind)

	none, total, err := s.List(ctx, ListFilter{VideoID: "zzz"})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, none)
}

func TestSQLite_SaveValidation(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	_, err := s.Save(ctx, Entry{Language: "en", Text: "x"})
	assert.Error(t, err)
	_, err = s.Save(ctx, Entry{VideoID: "a", Kind: "bogus"})
	assert.Error(t, err)
}
