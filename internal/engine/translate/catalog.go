package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/ytref"
)

// DefaultCatalog returns the built-in language catalog.
func DefaultCatalog() *ytref.Catalog {
	return ytref.NewCatalog(builtinLanguages)
}

// LoadCatalog reads a catalog from src: an http(s) URL or a file path holding either
// a JSON object ({"en": "english", ...}, key order kept) or an array of
// {"code", "name"} entries. An empty src yields the built-in catalog.
// Failures are *ytref.Failure of kind CatalogLookupFailed.
func LoadCatalog(ctx context.Context, client *http.Client, src string) (*ytref.Catalog, error) {
	if src == "" {
		return DefaultCatalog(), nil
	}
	data, err := readSource(ctx, client, src)
	if err != nil {
		return nil, &ytref.Failure{Kind: ytref.CatalogLookupFailed, Input: src, Err: err}
	}
	entries, err := parseCatalog(data)
	if err != nil {
		return nil, &ytref.Failure{Kind: ytref.CatalogLookupFailed, Input: src, Err: err}
	}
	return ytref.NewCatalog(entries), nil
}

func readSource(ctx context.Context, client *http.Client, src string) ([]byte, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		return os.ReadFile(src)
	}
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return client.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
}

func parseCatalog(data []byte) ([]ytref.CatalogEntry, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty catalog")
	}

	var entries []ytref.CatalogEntry
	if data[0] == '[' {
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("decode catalog array: %w", err)
		}
	} else {
		var err error
		if entries, err = parseCatalogObject(data); err != nil {
			return nil, err
		}
	}

	out := entries[:0]
	for _, e := range entries {
		e.Code = ytref.LanguageCode(strings.TrimSpace(string(e.Code)))
		e.Name = strings.TrimSpace(e.Name)
		if e.Code == "" || e.Name == "" {
			continue
		}
		out = append(out, e)
	}
	if len(out) == 0 {
		return nil, errors.New("catalog has no entries")
	}
	return out, nil
}

// parseCatalogObject walks the object token by token so the file's key order survives.
func parseCatalogObject(data []byte) ([]ytref.CatalogEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("catalog must be a JSON object or array")
	}
	var entries []ytref.CatalogEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode catalog key: %w", err)
		}
		var name string
		if err := dec.Decode(&name); err != nil {
			return nil, fmt.Errorf("decode catalog name for %v: %w", keyTok, err)
		}
		entries = append(entries, ytref.CatalogEntry{Code: ytref.LanguageCode(keyTok.(string)), Name: name})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return entries, nil
}
