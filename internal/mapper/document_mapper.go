package mapper

import (
	"time"

	"edu-assistant-be/internal/entity"
	"edu-assistant-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var deletedAt *time.Time
	if d.DeletedAt.Valid {
		t := d.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	pages := make(map[string]string, len(d.Pages))
	for k, v := range d.Pages {
		if s, ok := v.(string); ok {
			pages[k] = s
		}
	}

	return &entity.Document{
		Id:         d.Id,
		SessionId:  d.SessionId,
		Title:      d.Title,
		Content:    d.Content,
		Pages:      pages,
		Language:   d.Language,
		SourcePath: d.SourcePath,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
		IsDeleted:  d.DeletedAt.Valid,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if d.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *d.DeletedAt, Valid: true}
	} else if d.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	pages := make(datatypes.JSONMap, len(d.Pages))
	for k, v := range d.Pages {
		pages[k] = v
	}

	return &model.Document{
		Id:         d.Id,
		SessionId:  d.SessionId,
		Title:      d.Title,
		Content:    d.Content,
		Pages:      pages,
		Language:   d.Language,
		SourcePath: d.SourcePath,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
