package translate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_transcript/internal/ytref"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	require.Positive(t, c.Len())

	name, ok := c.Name("es")
	require.True(t, ok)
	assert.Equal(t, "spanish", name)

	code, err := ytref.Negotiate([]ytref.LanguageCode{"en", "iw", "he"}, "Hebrew", c)
	require.NoError(t, err)
	assert.Equal(t, ytref.LanguageCode("iw"), code)
}

func TestLoadCatalog_Empty(t *testing.T) {
	c, err := LoadCatalog(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalog().Len(), c.Len())
}

func TestLoadCatalog_FileObjectKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "langs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"xx": "klingon", "yy": "Klingon", "zz": " elvish "}`), 0o644))

	c, err := LoadCatalog(context.Background(), nil, path)
	require.NoError(t, err)
	assert.Equal(t, []ytref.CatalogEntry{
		{Code: "xx", Name: "klingon"},
		{Code: "yy", Name: "Klingon"},
		{Code: "zz", Name: "elvish"},
	}, c.Entries())

	code, err := c.CodeFor("KLINGON")
	require.NoError(t, err)
	assert.Equal(t, ytref.LanguageCode("xx"), code)
}

func TestLoadCatalog_URLArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"code":"en","name":"english"},{"code":"","name":"skip"},{"code":"de","name":"german"}]`)
	}))
	t.Cleanup(srv.Close)

	c, err := LoadCatalog(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestLoadCatalog_Failures(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`"just a string"`), 0o644))
	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{}`), 0o644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	for _, src := range []string{filepath.Join(dir, "missing.json"), bad, empty, srv.URL} {
		t.Run(filepath.Base(src), func(t *testing.T) {
			c, err := LoadCatalog(context.Background(), srv.Client(), src)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, ytref.ErrCatalogLookup)
			assert.Equal(t, ytref.CatalogLookupFailed, ytref.KindOf(err))
		})
	}
}
