package translate

// LLM prompt templates: data only, no logic.

// translateSystem frames every chunk request.
const translateSystem = `You are a professional subtitle translator.
Translate the user's text faithfully. Keep sentence order and sentence boundaries.
Output ONLY the translation: no notes, no quotes, no transliteration.`

// translatePrompt asks for one chunk.
// Args: source language, target language, text.
const translatePrompt = `Translate the following transcript excerpt from %s to %s.

Text:
%s`
