package voice

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	speechURLPattern          = regexp.MustCompile(`https?://\S+`)
	speechFencedCodePattern   = regexp.MustCompile("(?s)```.*?```")
	speechInlineCodePattern   = regexp.MustCompile("`[^`]*`")
	speechMarkdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
)

// scriptForLanguage maps a language code prefix to the script the synthesis
// voice expects. Codes arrive as bare ("hi") or region-tagged ("hi-IN").
var scriptForLanguage = map[string]*unicode.RangeTable{
	"hi": unicode.Devanagari,
	"mr": unicode.Devanagari,
	"bn": unicode.Bengali,
	"ta": unicode.Tamil,
	"te": unicode.Telugu,
	"kn": unicode.Kannada,
	"ml": unicode.Malayalam,
	"gu": unicode.Gujarati,
	"pa": unicode.Gurmukhi,
	"od": unicode.Oriya,
	"or": unicode.Oriya,
	"en": unicode.Latin,
}

// SanitizeForSynthesis strips markup and symbol noise from reply text and
// drops characters outside the target script's expected range, keeping
// Latin letters, digits, and basic punctuation. A rune belonging to the
// target script always survives, so text with at least one in-script
// character never sanitizes to empty.
func SanitizeForSynthesis(text, languageCode string) string {
	text = stripMarkup(text)
	if text == "" {
		return ""
	}

	script := scriptForLanguage[languagePrefix(languageCode)]
	if script == nil {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := true
	for _, r := range text {
		switch {
		case unicode.Is(script, r) || unicode.Is(unicode.Latin, r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || isSpeechSafePunctuation(r):
			if unicode.IsSpace(r) && prevSpace {
				continue
			}
			b.WriteRune(r)
			prevSpace = unicode.IsSpace(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// stripMarkup removes markdown, URLs, emoji, and control characters so the
// synthesized speech sounds conversational.
func stripMarkup(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	raw = speechFencedCodePattern.ReplaceAllString(raw, " ")
	raw = speechInlineCodePattern.ReplaceAllString(raw, " ")
	raw = speechMarkdownLinkPattern.ReplaceAllString(raw, "$1")
	raw = speechURLPattern.ReplaceAllString(raw, " ")

	raw = strings.NewReplacer(
		"*", " ",
		"_", " ",
		"\\", " ",
		"|", " ",
		"#", " ",
		"~", " ",
		"<", " ",
		">", " ",
	).Replace(raw)

	var b strings.Builder
	b.Grow(len(raw))
	prevSpace := true

	for _, r := range raw {
		switch {
		case r == '‍' || r == '️' || r == '⃣':
			continue
		case unicode.IsSpace(r):
			if !prevSpace {
				b.WriteByte(' ')
				prevSpace = true
			}
		case unicode.IsControl(r):
			continue
		case unicode.In(r, unicode.So, unicode.Sm, unicode.Sk):
			// Emoji and symbol glyphs sound wrong when spoken.
			continue
		default:
			b.WriteRune(r)
			prevSpace = false
		}
	}

	return strings.TrimSpace(b.String())
}

func isSpeechSafePunctuation(r rune) bool {
	switch r {
	case '.', ',', '!', '?', ':', ';', '\'', '"', '-', '(', ')':
		return true
	default:
		return false
	}
}

func languagePrefix(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	return code
}
