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

type RouterDecisionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewRouterDecisionRepository(db *gorm.DB) contract.RouterDecisionRepository {
	return &RouterDecisionRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *RouterDecisionRepositoryImpl) Create(ctx context.Context, decision *entity.RouterDecision) error {
	m := r.mapper.DecisionToModel(decision)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*decision = *r.mapper.DecisionToEntity(m)
	return nil
}

func (r *RouterDecisionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RouterDecision, error) {
	var models []*model.RouterDecision
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	decisions := make([]*entity.RouterDecision, len(models))
	for i, m := range models {
		decisions[i] = r.mapper.DecisionToEntity(m)
	}
	return decisions, nil
}
