// Package ytref resolves video-sharing URLs to video identifiers and negotiates
// caption languages against a provider's available tracks.
//
// Everything here is pure: no I/O, no shared mutable state. Callers own the
// network calls to the transcript and translation providers.
package ytref

import (
	"net/url"
	"strings"
	"unicode"
)

// VideoID is an opaque, non-empty identifier of a hosted video.
// It never contains path separators or query delimiters.
type VideoID string

// Resolver extracts a VideoID from a URL by host inspection.
// A host matches a pattern when it equals it or is a subdomain of it.
type Resolver struct {
	// ShortHosts carry the identifier as the first path segment (youtu.be/<id>).
	ShortHosts []string
	// CanonicalHosts carry the identifier in the "v" query parameter (youtube.com/watch?v=<id>).
	CanonicalHosts []string
}

// DefaultResolver knows the YouTube hosts.
var DefaultResolver = Resolver{
	ShortHosts:     []string{"youtu.be"},
	CanonicalHosts: []string{"youtube.com"},
}

// Resolve runs DefaultResolver.
func Resolve(rawURL string) (VideoID, error) {
	return DefaultResolver.Resolve(rawURL)
}

// Resolve parses rawURL and returns its VideoID, or a *Failure of kind InvalidURL.
// The identifier is not checked against any provider.
func (r Resolver) Resolve(rawURL string) (VideoID, error) {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return "", &Failure{Kind: InvalidURL}
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", &Failure{Kind: InvalidURL, Input: rawURL, Err: err}
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", &Failure{Kind: InvalidURL, Input: rawURL}
	}

	var id string
	switch {
	case matchHost(host, r.ShortHosts):
		id, _, _ = strings.Cut(strings.TrimLeft(u.Path, "/"), "/")
	case matchHost(host, r.CanonicalHosts):
		id = u.Query().Get("v")
	default:
		return "", &Failure{Kind: InvalidURL, Input: rawURL}
	}

	if !validID(id) {
		return "", &Failure{Kind: InvalidURL, Input: rawURL}
	}
	return VideoID(id), nil
}

func matchHost(host string, patterns []string) bool {
	for _, p := range patterns {
		p = strings.ToLower(p)
		if host == p || strings.HasSuffix(host, "."+p) {
			return true
		}
	}
	return false
}

// validID enforces the VideoID invariant. A backslash counts as a path separator.
func validID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if strings.ContainsRune(`/\?&#`, r) || unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}
	return true
}
