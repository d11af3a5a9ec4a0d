package utils

import "strings"

var arabicDigits = map[rune]rune{
	'٠': '0', '١': '1', '٢': '2', '٣': '3', '٤': '4',
	'٥': '5', '٦': '6', '٧': '7', '٨': '8', '٩': '9',
}

// NormalizeArabicDigits rewrites Arabic-Indic digits to ASCII so numeric
// arguments ("صفحة ٣") parse with strconv like their English counterparts.
func NormalizeArabicDigits(text string) string {
	return strings.Map(func(r rune) rune {
		if d, ok := arabicDigits[r]; ok {
			return d
		}
		return r
	}, text)
}
