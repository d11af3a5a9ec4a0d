package store

import (
	"time"

	"github.com/google/uuid"
)

// Caps for rolling in-memory structures.
const (
	HistoryCap           = 20 // conversation turns kept per session
	DifficultyRatingsCap = 20 // recent difficulty ratings kept in progress
)

// HistoryEntry is one user/assistant exchange kept in the rolling memory.
type HistoryEntry struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// LearningProgress is the rolling per-session progress summary maintained
// by the tutoring layer. It lives next to the session state, separate from
// the durable learner profile.
type LearningProgress struct {
	TypeCounts        map[string]int `json:"type_counts"` // e.g. "question_count" semantics, keyed by type
	TotalInteractions int            `json:"total_interactions"`
	LastInteraction   time.Time      `json:"last_interaction"`
	DifficultyRatings []int          `json:"difficulty_ratings"` // capped at the last 20
}

// SessionState is the volatile per-session state: the pagination cursor,
// the rolling conversation memory, chat mode and bookmarks. Scoped to a
// session id so concurrent sessions never interfere.
type SessionState struct {
	ID        string    `json:"id"` // ChatSession ID
	LearnerID uuid.UUID `json:"learner_id"`

	ActiveDocumentID uuid.UUID `json:"active_document_id"`
	CurrentPage      int       `json:"current_page"` // 0-based cursor into the open document
	ChatOpen         bool      `json:"chat_open"`
	Bookmarks        []int     `json:"bookmarks"` // bookmarked page indexes

	History  []HistoryEntry    `json:"history"`
	Progress *LearningProgress `json:"progress,omitempty"`

	TutoringSessionID uuid.UUID `json:"tutoring_session_id"`
	LastQuery         string    `json:"last_query"`
}

// HasActiveDocument reports whether a document is currently open.
func (s *SessionState) HasActiveDocument() bool {
	return s.ActiveDocumentID != uuid.Nil
}

// AppendHistory records one exchange, keeping only the most recent
// HistoryCap entries.
func (s *SessionState) AppendHistory(role, content string) {
	s.History = append(s.History, HistoryEntry{Role: role, Content: content})
	if len(s.History) > HistoryCap {
		s.History = s.History[len(s.History)-HistoryCap:]
	}
}

// EnsureProgress lazily initializes the rolling progress summary.
func (s *SessionState) EnsureProgress() *LearningProgress {
	if s.Progress == nil {
		s.Progress = &LearningProgress{
			TypeCounts: make(map[string]int),
		}
	}
	return s.Progress
}

// RecordInteraction updates the rolling progress counters for one tutoring
// interaction. Ratings beyond DifficultyRatingsCap fall off the front.
func (p *LearningProgress) RecordInteraction(interactionType string, at time.Time, difficultyRating *int) {
	if p.TypeCounts == nil {
		p.TypeCounts = make(map[string]int)
	}
	p.TypeCounts[interactionType+"_count"]++
	p.TotalInteractions++
	p.LastInteraction = at
	if difficultyRating != nil {
		p.DifficultyRatings = append(p.DifficultyRatings, *difficultyRating)
		if len(p.DifficultyRatings) > DifficultyRatingsCap {
			p.DifficultyRatings = p.DifficultyRatings[len(p.DifficultyRatings)-DifficultyRatingsCap:]
		}
	}
}
