package entity

import (
	"time"

	"github.com/google/uuid"
)

// RouterDecision is the append-only audit record of which route a query
// took (qa | summarization | content_agent | tutor_agent).
type RouterDecision struct {
	Id        uuid.UUID
	Query     string
	Route     string
	CreatedAt time.Time
}
