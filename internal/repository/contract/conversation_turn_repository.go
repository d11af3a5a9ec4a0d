package contract

import (
	"context"

	"edu-assistant-be/internal/entity"
	"edu-assistant-be/internal/repository/specification"
)

// ConversationTurnRepository is append-only: turns are never updated or
// deleted by the core.
type ConversationTurnRepository interface {
	Create(ctx context.Context, turn *entity.ConversationTurn) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationTurn, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
