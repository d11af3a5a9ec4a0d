package dispatch

import (
	"regexp"
	"strconv"
	"strings"

	"edu-assistant-be/pkg/rag/router"
	"edu-assistant-be/pkg/utils"
)

var (
	notePageRe   = regexp.MustCompile(`(?i)(?:on\s+)?(?:page|صفحة)\s*(\d+)`)
	noteParenRe  = regexp.MustCompile(`\(([^)]+)\)`)
	noteQuoteRe  = regexp.MustCompile(`"([^"]+)"|'([^']+)'|“([^”]+)”`)
	notePrefixes = []string{
		"add a note", "add note", "take a note", "take note",
		"note that", "note", "أضف ملاحظة", "اضف ملاحظة", "ملاحظة",
	}
)

// noteArgs resolves the note text and optional page number, preferring the
// router's structured details and falling back to free-text extraction.
// Arabic-Indic digits are normalized before number parsing.
func noteArgs(details router.ActionDetails, utterance string) (string, *int) {
	text := strings.TrimSpace(details.NoteText)
	page := details.PageNum

	normalized := utils.NormalizeArabicDigits(utterance)

	if page == nil {
		if m := notePageRe.FindStringSubmatch(normalized); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				page = &n
			}
		}
	}

	if text == "" {
		text = extractNoteText(normalized)
	}
	return text, page
}

func extractNoteText(utterance string) string {
	if m := noteParenRe.FindStringSubmatch(utterance); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := noteQuoteRe.FindStringSubmatch(utterance); m != nil {
		for _, group := range m[1:] {
			if group != "" {
				return strings.TrimSpace(group)
			}
		}
	}

	// No delimiters: strip the command phrase and the page reference,
	// what remains is the note body.
	rest := notePageRe.ReplaceAllString(utterance, "")
	lower := strings.ToLower(rest)
	for _, prefix := range notePrefixes {
		if idx := strings.Index(lower, prefix); idx != -1 {
			rest = rest[:idx] + rest[idx+len(prefix):]
			break
		}
	}
	return strings.Trim(strings.TrimSpace(rest), ":,.")
}
