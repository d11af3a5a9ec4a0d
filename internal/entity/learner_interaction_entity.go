package entity

import (
	"time"

	"github.com/google/uuid"
)

// Interaction types for LearnerInteraction.
const (
	InteractionQuestion    = "question"
	InteractionExplanation = "explanation"
	InteractionPractice    = "practice"
	InteractionAssessment  = "assessment"
	InteractionHint        = "hint"
	InteractionFeedback    = "feedback"
)

// LearnerInteraction is one logged tutoring turn. Append-only.
type LearnerInteraction struct {
	Id                uuid.UUID
	TutoringSessionId uuid.UUID
	Type              string
	Query             string
	Response          string
	Helpful           *bool
	DifficultyRating  *int // 1-5 when present
	ResponseTime      *float64
	Metadata          map[string]interface{}
	CreatedAt         time.Time
}
