package implementation

import (
	"context"
	"errors"

	"edu-assistant-be/internal/entity"
	"edu-assistant-be/internal/mapper"
	"edu-assistant-be/internal/model"
	"edu-assistant-be/internal/repository/contract"
	"edu-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TutoringSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LearnerMapper
}

func NewTutoringSessionRepository(db *gorm.DB) contract.TutoringSessionRepository {
	return &TutoringSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewLearnerMapper(),
	}
}

func (r *TutoringSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TutoringSessionRepositoryImpl) Create(ctx context.Context, session *entity.TutoringSession) error {
	m := r.mapper.SessionToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.SessionToEntity(m)
	return nil
}

func (r *TutoringSessionRepositoryImpl) Update(ctx context.Context, session *entity.TutoringSession) error {
	m := r.mapper.SessionToModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.SessionToEntity(m)
	return nil
}

func (r *TutoringSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TutoringSession, error) {
	var m model.TutoringSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SessionToEntity(&m), nil
}

func (r *TutoringSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TutoringSession, error) {
	var models []*model.TutoringSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.SessionsToEntities(models), nil
}

func (r *TutoringSessionRepositoryImpl) FindActiveByLearner(ctx context.Context, learnerId uuid.UUID) (*entity.TutoringSession, error) {
	return r.FindOne(ctx,
		specification.ByLearnerID{LearnerID: learnerId},
		specification.ByActive{Active: true},
	)
}
