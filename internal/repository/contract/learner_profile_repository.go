package contract

import (
	"context"

	"edu-assistant-be/internal/entity"
	"edu-assistant-be/internal/repository/specification"
)

type LearnerProfileRepository interface {
	Create(ctx context.Context, profile *entity.LearnerProfile) error
	Update(ctx context.Context, profile *entity.LearnerProfile) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LearnerProfile, error)
}
