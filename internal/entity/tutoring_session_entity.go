package entity

import (
	"time"

	"github.com/google/uuid"
)

// EndedByNewSession marks a session that was closed because the learner
// started a new one.
const EndedByNewSession = "new_session_started"

// TutoringSession tracks one tutoring engagement. State machine:
// none -> active -> ended (terminal; performance summary written at end).
// At most one active session per registered learner.
type TutoringSession struct {
	Id                 uuid.UUID
	LearnerId          *uuid.UUID // nil for guest sessions (which are never persisted)
	Topic              string
	State              map[string]interface{} // opaque blob incl. interaction history (cap 50)
	Active             bool
	StartedAt          time.Time
	EndedAt            *time.Time
	EndedBy            string
	PerformanceSummary map[string]interface{}
}

// InteractionHistoryCap bounds the interaction summaries kept in State.
const InteractionHistoryCap = 50
