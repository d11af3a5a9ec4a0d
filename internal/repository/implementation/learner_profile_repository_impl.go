package implementation

import (
	"context"
	"errors"

	"edu-assistant-be/internal/entity"
	"edu-assistant-be/internal/mapper"
	"edu-assistant-be/internal/model"
	"edu-assistant-be/internal/repository/contract"
	"edu-assistant-be/internal/repository/specification"

	"gorm.io/gorm"
)

type LearnerProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LearnerMapper
}

func NewLearnerProfileRepository(db *gorm.DB) contract.LearnerProfileRepository {
	return &LearnerProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewLearnerMapper(),
	}
}

func (r *LearnerProfileRepositoryImpl) Create(ctx context.Context, profile *entity.LearnerProfile) error {
	m := r.mapper.ProfileToModel(profile)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*profile = *r.mapper.ProfileToEntity(m)
	return nil
}

func (r *LearnerProfileRepositoryImpl) Update(ctx context.Context, profile *entity.LearnerProfile) error {
	m := r.mapper.ProfileToModel(profile)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*profile = *r.mapper.ProfileToEntity(m)
	return nil
}

func (r *LearnerProfileRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LearnerProfile, error) {
	var m model.LearnerProfile
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ProfileToEntity(&m), nil
}
