package ytref

import "strings"

// LanguageCode is a short language token from the provider vocabulary ("en", "zh-cn", "pt-BR").
type LanguageCode string

// CatalogEntry pairs a code with its human-readable name.
type CatalogEntry struct {
	Code LanguageCode `json:"code"`
	Name string       `json:"name"`
}

// Catalog is an ordered, read-only code → display-name table.
// Order is significant: on duplicate display names the earliest entry wins.
type Catalog struct {
	entries []CatalogEntry
}

// NewCatalog copies entries into a Catalog, preserving order.
func NewCatalog(entries []CatalogEntry) *Catalog {
	cp := make([]CatalogEntry, len(entries))
	copy(cp, entries)
	return &Catalog{entries: cp}
}

// Entries returns a copy of the catalog in order.
func (c *Catalog) Entries() []CatalogEntry {
	if c == nil {
		return nil
	}
	cp := make([]CatalogEntry, len(c.entries))
	copy(cp, c.entries)
	return cp
}

// Len is the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Name returns the display name for code (case-insensitive).
func (c *Catalog) Name(code LanguageCode) (string, bool) {
	if c == nil {
		return "", false
	}
	for _, e := range c.entries {
		if strings.EqualFold(string(e.Code), string(code)) {
			return e.Name, true
		}
	}
	return "", false
}

// lookupName returns the code of the first entry whose name matches (case-insensitive).
func (c *Catalog) lookupName(name string) (LanguageCode, bool) {
	if c == nil {
		return "", false
	}
	for _, e := range c.entries {
		if strings.EqualFold(e.Name, name) {
			return e.Code, true
		}
	}
	return "", false
}

// CodeFor maps a code or display name to a catalog code.
// Codes are tried first, then names. Misses are CatalogLookupFailed.
func (c *Catalog) CodeFor(requested string) (LanguageCode, error) {
	q := strings.TrimSpace(requested)
	if q != "" && c != nil {
		for _, e := range c.entries {
			if strings.EqualFold(string(e.Code), q) {
				return e.Code, nil
			}
		}
		if code, ok := c.lookupName(q); ok {
			return code, nil
		}
	}
	return "", &Failure{Kind: CatalogLookupFailed, Input: requested}
}

// Negotiate picks the entry of available that matches requested.
//
// requested is tried as a code against available first (case-insensitive), then as a
// display name in catalog whose code must be in available. The returned code is the
// available entry verbatim. catalog may be nil, which disables the name path.
func Negotiate(available []LanguageCode, requested string, catalog *Catalog) (LanguageCode, error) {
	q := strings.TrimSpace(requested)
	if q == "" {
		return "", &Failure{Kind: LanguageUnavailable, Input: requested}
	}
	if code, ok := findCode(available, q); ok {
		return code, nil
	}
	if code, ok := catalog.lookupName(q); ok {
		if got, ok := findCode(available, string(code)); ok {
			return got, nil
		}
	}
	return "", &Failure{Kind: LanguageUnavailable, Input: requested}
}

func findCode(available []LanguageCode, code string) (LanguageCode, bool) {
	for _, a := range available {
		if strings.EqualFold(string(a), code) {
			return a, true
		}
	}
	return "", false
}
