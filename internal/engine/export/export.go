// Package export writes transcripts to files in the download directory.
package export

import (
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/google/uuid"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// Format is an output file format.
type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
)

// Default file names.
const (
	DefaultName           = "Transcript"
	DefaultTranslatedName = "Translated_Transcript"
)

const maxNameRunes = 64

// ParseFormat maps user input to a Format. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "txt", "text":
		return FormatText, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("export: unsupported format %q (valid: txt, md)", s)
}

// Result describes a written file.
type Result struct {
	Path   string `json:"path"`
	Name   string `json:"name"`
	Format Format `json:"format"`
	Bytes  int    `json:"bytes"`
}

// Write stores content under dir as <name>-<random>.<format>. The random suffix
// keeps concurrent downloads of the same video from clobbering each other.
func Write(dir, name, content string, format Format) (*Result, error) {
	if dir == "" {
		return nil, errors.New("export: download directory not configured")
	}
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("export: nothing to write")
	}
	if format == "" {
		format = FormatText
	}

	body := content
	if format == FormatMarkdown {
		md, err := Markdown(name, content)
		if err != nil {
			return nil, err
		}
		body = md
	}
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("export: mkdir %s: %w", dir, err)
	}
	file := SanitizeName(name) + "-" + uuid.New().String()[:8] + "." + string(format)
	path := filepath.Join(dir, file)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return nil, fmt.Errorf("export: write %s: %w", path, err)
	}
	engine.IncrDownload()
	return &Result{Path: path, Name: file, Format: format, Bytes: len(body)}, nil
}

// Markdown renders a titled document: the title as a heading and each
// non-blank line of content as a paragraph.
func Markdown(title, content string) (string, error) {
	if strings.TrimSpace(title) == "" {
		title = DefaultName
	}
	var b strings.Builder
	b.WriteString("<h1>" + html.EscapeString(title) + "</h1>")
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			b.WriteString("<p>" + html.EscapeString(line) + "</p>")
		}
	}
	md, err := htmltomarkdown.ConvertString(b.String())
	if err != nil {
		return "", fmt.Errorf("export: markdown: %w", err)
	}
	return strings.TrimSpace(md), nil
}

// SanitizeName reduces name to a safe file stem: letters, digits, '-' and '_'.
func SanitizeName(name string) string {
	var b strings.Builder
	n := 0
	for _, r := range strings.TrimSpace(name) {
		if n == maxNameRunes {
			break
		}
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
		n++
	}
	s := strings.Trim(b.String(), "_-")
	if s == "" {
		return DefaultName
	}
	return s
}
