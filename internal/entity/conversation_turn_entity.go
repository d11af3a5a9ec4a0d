package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConversationTurn is one query/answer exchange. Append-only; persistence
// failures are logged and swallowed, never surfaced to the user.
type ConversationTurn struct {
	Id        uuid.UUID
	SessionId *uuid.UUID
	Query     string
	Answer    string
	CreatedAt time.Time
}
