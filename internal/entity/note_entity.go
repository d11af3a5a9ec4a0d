package entity

import (
	"time"

	"github.com/google/uuid"
)

// Note is a user annotation captured through the add_note action,
// optionally pinned to a document page.
type Note struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Content   string
	Page      *int
	CreatedAt time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
