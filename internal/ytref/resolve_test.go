package ytref

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exampleResolver = Resolver{
	ShortHosts:     []string{"short.example"},
	CanonicalHosts: []string{"watch.example"},
}

func TestResolve_ExampleHosts(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want VideoID
	}{
		{"short link", "https://short.example/ABC123", "ABC123"},
		{"short link trailing segment", "https://short.example/ABC123/extra", "ABC123"},
		{"short link with query", "https://short.example/ABC123?t=42", "ABC123"},
		{"canonical", "https://watch.example/watch?v=XYZ789&t=10", "XYZ789"},
		{"canonical v second", "https://watch.example/watch?t=10&v=XYZ789", "XYZ789"},
		{"canonical subdomain", "https://www.watch.example/watch?v=XYZ789", "XYZ789"},
		{"no scheme", "short.example/ABC123", "ABC123"},
		{"uppercase host", "HTTPS://SHORT.EXAMPLE/ABC123", "ABC123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := exampleResolver.Resolve(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_Invalid(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"canonical without v", "https://watch.example/watch"},
		{"canonical empty v", "https://watch.example/watch?v="},
		{"short link without path", "https://short.example/"},
		{"short link bare host", "https://short.example"},
		{"not a url", "not a url"},
		{"empty", ""},
		{"unknown host", "https://vimeo.com/123"},
		{"lookalike host", "https://notshort.example/ABC123"},
		{"v with separator", "https://watch.example/watch?v=a/b"},
		{"v with leading space", "https://watch.example/watch?v=+abc"},
		{"v with trailing space", "https://watch.example/watch?v=abc%20"},
		{"v with nul", "https://watch.example/watch?v=%00"},
		{"v with tab", "https://watch.example/watch?v=ab%09c"},
		{"short link with backslash", `https://short.example/abc\def`},
		{"v with backslash", "https://watch.example/watch?v=abc%5Cdef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := exampleResolver.Resolve(tt.url)
			require.Error(t, err)
			assert.Empty(t, got)
			assert.True(t, errors.Is(err, ErrInvalidURL), "want ErrInvalidURL, got %v", err)
			assert.Equal(t, InvalidURL, KindOf(err))
		})
	}
}

func TestResolve_YouTubeDefaults(t *testing.T) {
	tests := []struct {
		url  string
		want VideoID
	}{
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ&feature=share", "dQw4w9WgXcQ"},
		{"  https://youtu.be/dQw4w9WgXcQ?si=abc  ", "dQw4w9WgXcQ"},
	}
	for _, tt := range tests {
		got, err := Resolve(tt.url)
		require.NoError(t, err, tt.url)
		assert.Equal(t, tt.want, got, tt.url)
	}

	_, err := Resolve("https://www.youtube.com/watch")
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestResolve_Idempotent(t *testing.T) {
	for _, u := range []string{"https://youtu.be/abc", "https://youtube.com/watch", "not a url"} {
		id1, err1 := Resolve(u)
		id2, err2 := Resolve(u)
		assert.Equal(t, id1, id2)
		assert.Equal(t, err1 == nil, err2 == nil)
		if err1 != nil {
			assert.Equal(t, err1.Error(), err2.Error())
		}
	}
}

func TestFailure_Reason(t *testing.T) {
	_, err := Resolve("https://example.com/x")
	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, "invalid URL format", f.Reason())
	assert.Contains(t, f.Error(), "https://example.com/x")
	assert.Equal(t, "invalid_url", f.Kind.String())
}
