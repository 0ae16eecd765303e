package translate

import (
	"github.com/RadhiFadlillah/whatlanggo"

	"github.com/anatolykoptev/go_transcript/internal/ytref"
)

// detectSampleRunes bounds how much text is fed to the detector.
const detectSampleRunes = 2000

// DetectLanguage guesses the ISO 639-1 code of text. Returns "" when unsure.
func DetectLanguage(text string) ytref.LanguageCode {
	r := []rune(text)
	if len(r) > detectSampleRunes {
		r = r[:detectSampleRunes]
	}
	info := whatlanggo.Detect(string(r))
	if !info.IsReliable() {
		return ""
	}
	return ytref.LanguageCode(info.Lang.Iso6391())
}
