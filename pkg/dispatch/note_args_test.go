package dispatch

import (
	"testing"

	"edu-assistant-be/pkg/rag/router"
)

func TestNoteArgs(t *testing.T) {
	five := 5

	tests := []struct {
		name      string
		details   router.ActionDetails
		utterance string
		wantText  string
		wantPage  *int
	}{
		{
			name:      "structured details win over free text",
			details:   router.ActionDetails{NoteText: "revise chapter 3", PageNum: &five},
			utterance: "add a note (something else) on page 9",
			wantText:  "revise chapter 3",
			wantPage:  &five,
		},
		{
			name:      "parentheses extraction with page",
			utterance: "add a note (revise chapter 3) on page 12",
			wantText:  "revise chapter 3",
			wantPage:  intPtr(12),
		},
		{
			name:      "double quotes extraction",
			utterance: `add a note "buy the workbook"`,
			wantText:  "buy the workbook",
		},
		{
			name:      "arabic digits and arabic page word",
			utterance: "أضف ملاحظة (مهم جدا) صفحة ٧",
			wantText:  "مهم جدا",
			wantPage:  intPtr(7),
		},
		{
			name:      "no delimiters strips the command phrase",
			utterance: "add a note remember the quiz on page 4",
			wantText:  "remember the quiz",
			wantPage:  intPtr(4),
		},
		{
			name:      "no note text at all",
			utterance: "add a note",
			wantText:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, page := noteArgs(tt.details, tt.utterance)

			if text != tt.wantText {
				t.Errorf("text = %q, want %q", text, tt.wantText)
			}
			switch {
			case tt.wantPage == nil && page != nil:
				t.Errorf("page = %d, want nil", *page)
			case tt.wantPage != nil && page == nil:
				t.Errorf("page = nil, want %d", *tt.wantPage)
			case tt.wantPage != nil && *page != *tt.wantPage:
				t.Errorf("page = %d, want %d", *page, *tt.wantPage)
			}
		})
	}
}

func intPtr(n int) *int { return &n }
