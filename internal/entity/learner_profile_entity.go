package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExplanationStylePreference weights one explanation style for a learner.
type ExplanationStylePreference struct {
	Style         string  `json:"style"`
	Effectiveness float64 `json:"effectiveness"`
}

// LearnerProfile is the durable learner model. Performance metrics are
// updated with incremental averages only, never overwritten in place.
// Guest profiles share this shape but carry GuestSession=true and are
// never persisted.
type LearnerProfile struct {
	Id                         uuid.UUID
	Grade                      int
	LearningStyle              string // Visual | Auditory | Kinesthetic | Analytical | Creative | Mixed
	PreferredLanguage          string
	DifficultyPreference       string // easy | medium | challenging
	AccuracyRate               float64
	AvgResponseTime            float64
	CompletionRate             float64
	TotalSessions              int
	Struggles                  []string
	MasteredTopics             []string
	PreferredExplanationStyles []ExplanationStylePreference
	GuestSession               bool
	CreatedAt                  time.Time
	UpdatedAt                  *time.Time
}

// ApplyIncrementalAverage folds one new observation into a running average
// over n prior observations: (old*n + value) / (n+1).
func ApplyIncrementalAverage(oldAvg float64, n int, value float64) float64 {
	if n < 0 {
		n = 0
	}
	return (oldAvg*float64(n) + value) / float64(n+1)
}
