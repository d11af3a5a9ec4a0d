package implementation

import (
	"context"

	"edu-assistant-be/internal/entity"
	"edu-assistant-be/internal/mapper"
	"edu-assistant-be/internal/model"
	"edu-assistant-be/internal/repository/contract"
	"edu-assistant-be/internal/repository/specification"

	"gorm.io/gorm"
)

type LearnerInteractionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LearnerMapper
}

func NewLearnerInteractionRepository(db *gorm.DB) contract.LearnerInteractionRepository {
	return &LearnerInteractionRepositoryImpl{
		db:     db,
		mapper: mapper.NewLearnerMapper(),
	}
}

func (r *LearnerInteractionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LearnerInteractionRepositoryImpl) Create(ctx context.Context, interaction *entity.LearnerInteraction) error {
	m := r.mapper.InteractionToModel(interaction)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*interaction = *r.mapper.InteractionToEntity(m)
	return nil
}

func (r *LearnerInteractionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LearnerInteraction, error) {
	var models []*model.LearnerInteraction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.InteractionsToEntities(models), nil
}

func (r *LearnerInteractionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.LearnerInteraction{}).Count(&count).Error
	return count, err
}
