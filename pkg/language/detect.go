package language

import "strings"

// Supported language tags.
const (
	English = "English"
	Spanish = "Spanish"
	Arabic  = "Arabic"
)

var spanishCues = []string{"¿", "¡", "por favor", "gracias"}

// Detect inspects literal script and punctuation cues rather than calling a
// language-ID service. Spanish inverted punctuation or courtesy phrases win
// first, then any Arabic-script character; everything else is English.
func Detect(text string) string {
	lower := strings.ToLower(text)
	for _, cue := range spanishCues {
		if strings.Contains(lower, cue) {
			return Spanish
		}
	}
	for _, r := range text {
		if isArabicRune(r) {
			return Arabic
		}
	}
	return English
}

// ContainsArabic reports whether any rune falls in the Arabic script blocks.
func ContainsArabic(text string) bool {
	for _, r := range text {
		if isArabicRune(r) {
			return true
		}
	}
	return false
}

func isArabicRune(r rune) bool {
	// Arabic, Arabic Supplement, and Arabic Presentation Forms blocks.
	return (r >= 0x0600 && r <= 0x06FF) ||
		(r >= 0x0750 && r <= 0x077F) ||
		(r >= 0xFB50 && r <= 0xFDFF) ||
		(r >= 0xFE70 && r <= 0xFEFF)
}
