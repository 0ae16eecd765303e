package engine

import (
	"testing"
	"unicode/utf8"
)

func TestCleanCaption(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"font tag", `<font color="#E5E5E5">so we</font> start`, "so we start"},
		{"italics", "<i>[music]</i>", "[music]"},
		{"entities", "it&#39;s &amp; done", "it's & done"},
		{"double escaped", "it&amp;#39;s", "it's"},
		{"newlines collapsed", "line one\nline   two", "line one line two"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCaption(tt.in); got != tt.want {
				t.Errorf("CleanCaption(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	s := "Привет мир, это тест"
	got := TruncateRunes(s, 6, "")
	if utf8.RuneCountInString(got) > 6 {
		t.Errorf("expected at most 6 runes, got %q", got)
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncation produced invalid UTF-8: %q", got)
	}
	if TruncateRunes(s, 0, "...") != s {
		t.Error("limit 0 should disable truncation")
	}
}
