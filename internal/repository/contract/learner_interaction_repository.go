package contract

import (
	"context"

	"edu-assistant-be/internal/entity"
	"edu-assistant-be/internal/repository/specification"
)

// LearnerInteractionRepository is append-only.
type LearnerInteractionRepository interface {
	Create(ctx context.Context, interaction *entity.LearnerInteraction) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LearnerInteraction, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
