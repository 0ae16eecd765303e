package engine

import (
	"io"
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
	"golang.org/x/net/html"
)

// UserAgentBot identifies plain API requests (timedtext, catalog downloads).
const UserAgentBot = "GoTranscript/1.0"

// CleanCaption strips caption markup (<font>, <i>, <b>), decodes entities and
// collapses whitespace. Caption payloads are often double-escaped ("&amp;#39;"),
// so entities are decoded once more after tokenizing.
func CleanCaption(s string) string {
	if s == "" {
		return ""
	}
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() != io.EOF {
				return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
			}
			break
		}
		if tt == html.TextToken {
			sb.Write(z.Text())
		}
	}
	text := sb.String()
	if strings.Contains(text, "&") {
		text = html.UnescapeString(text)
	}
	return strings.Join(strings.Fields(text), " ")
}

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Pass suffix="" for no suffix. Safe for UTF-8 (Cyrillic, CJK, emoji).
func TruncateRunes(s string, limit int, suffix string) string {
	if limit <= 0 {
		return s
	}
	return strutil.TruncateWith(s, limit, suffix)
}

// TruncateAtWord truncates a string to maxLen runes at a word boundary.
func TruncateAtWord(s string, maxLen int) string {
	return strutil.TruncateAtWord(s, maxLen)
}
