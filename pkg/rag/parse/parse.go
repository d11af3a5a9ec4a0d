package parse

import "strings"

// ExtractFirstJSONObject returns the first balanced {...} block in the
// text, tolerant of surrounding prose and of later unrelated braces. Brace
// counting skips string literals so embedded "{" characters don't break
// the scan. Returns "" when no well-formed block exists.
func ExtractFirstJSONObject(text string) string {
	start := strings.Index(text, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}

	return ""
}
