package contract

import (
	"context"

	"edu-assistant-be/internal/entity"
	"edu-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TutoringSessionRepository interface {
	Create(ctx context.Context, session *entity.TutoringSession) error
	Update(ctx context.Context, session *entity.TutoringSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TutoringSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TutoringSession, error)
	// FindActiveByLearner returns the learner's single active session,
	// or nil when none is active.
	FindActiveByLearner(ctx context.Context, learnerId uuid.UUID) (*entity.TutoringSession, error)
}
