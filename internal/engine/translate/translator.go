// Package translate turns transcripts into other languages: the language
// catalog used to name targets, source detection and chunked LLM translation.
package translate

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/anatolykoptev/go_transcript/internal/ytref"
)

// Translator translates text from source to target. An empty source means unknown.
type Translator interface {
	Translate(ctx context.Context, text string, source, target ytref.LanguageCode) (string, error)
}

// sentenceEnds are the runes after which a chunk may be cut.
const sentenceEnds = ".!?。！？\n"

// SplitChunks cuts text into pieces of at most limit runes, preferring sentence
// boundaries, then word boundaries. A limit <= 0 returns text as one chunk.
func SplitChunks(text string, limit int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var cur strings.Builder
	curLen := 0
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			chunks = append(chunks, s)
		}
		cur.Reset()
		curLen = 0
	}

	for _, sentence := range splitSentences(text) {
		n := utf8.RuneCountInString(sentence)
		if curLen > 0 && curLen+n > limit {
			flush()
		}
		if n > limit {
			chunks = append(chunks, splitWords(sentence, limit)...)
			continue
		}
		cur.WriteString(sentence)
		curLen += n
	}
	flush()
	return chunks
}

// splitSentences splits after each sentence terminator, keeping trailing spaces
// with the sentence that precedes them.
func splitSentences(text string) []string {
	var out []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if !strings.ContainsRune(sentenceEnds, runes[i]) {
			continue
		}
		j := i + 1
		for j < len(runes) && (runes[j] == ' ' || runes[j] == '\t') {
			j++
		}
		if j < len(runes) && j == i+1 && runes[i] != '\n' {
			// "3.5" or "e.g." inside a word: not a boundary.
			continue
		}
		out = append(out, string(runes[start:j]))
		start = j
		i = j - 1
	}
	if start < len(runes) {
		out = append(out, string(runes[start:]))
	}
	return out
}

// splitWords breaks an oversized sentence on spaces; single words longer than
// limit are cut by runes.
func splitWords(sentence string, limit int) []string {
	var out []string
	var cur []rune
	for _, w := range strings.Fields(sentence) {
		wr := []rune(w)
		for len(wr) > limit {
			if len(cur) > 0 {
				out = append(out, string(cur))
				cur = cur[:0]
			}
			out = append(out, string(wr[:limit]))
			wr = wr[limit:]
		}
		if len(wr) == 0 {
			continue
		}
		switch {
		case len(cur) == 0:
			cur = append(cur, wr...)
		case len(cur)+1+len(wr) <= limit:
			cur = append(cur, ' ')
			cur = append(cur, wr...)
		default:
			out = append(out, string(cur))
			cur = append(cur[:0], wr...)
		}
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}
