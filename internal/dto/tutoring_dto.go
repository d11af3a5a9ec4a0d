package dto

import (
	"time"

	"github.com/google/uuid"
)

type TutoringSessionResponse struct {
	Id                 uuid.UUID              `json:"id"`
	Topic              string                 `json:"topic"`
	Active             bool                   `json:"active"`
	StartedAt          time.Time              `json:"started_at"`
	EndedAt            *time.Time             `json:"ended_at,omitempty"`
	EndedBy            string                 `json:"ended_by,omitempty"`
	PerformanceSummary map[string]interface{} `json:"performance_summary,omitempty"`
}

type RateDifficultyRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
}
