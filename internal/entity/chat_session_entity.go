package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession is the durable conversation container. Created on first
// contact, mutated only through metadata patches, never deleted by the core.
type ChatSession struct {
	Id        uuid.UUID
	Metadata  map[string]interface{}
	CreatedAt time.Time
	UpdatedAt *time.Time
}
