package contract

import (
	"context"

	"edu-assistant-be/internal/entity"
	"edu-assistant-be/internal/repository/specification"
)

// RouterDecisionRepository is the append-only routing audit log.
type RouterDecisionRepository interface {
	Create(ctx context.Context, decision *entity.RouterDecision) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RouterDecision, error)
}
