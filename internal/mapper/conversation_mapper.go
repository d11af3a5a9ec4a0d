package mapper

import (
	"time"

	"edu-assistant-be/internal/entity"
	"edu-assistant-be/internal/model"

	"gorm.io/datatypes"
)

// ConversationMapper covers the small append-only conversation records:
// chat sessions, conversation turns, and router decisions.
type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) SessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatSession{
		Id:        s.Id,
		Metadata:  map[string]interface{}(s.Metadata),
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *ConversationMapper) SessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.ChatSession{
		Id:        s.Id,
		Metadata:  datatypes.JSONMap(s.Metadata),
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *ConversationMapper) TurnToEntity(t *model.ConversationTurn) *entity.ConversationTurn {
	if t == nil {
		return nil
	}
	return &entity.ConversationTurn{
		Id:        t.Id,
		SessionId: t.SessionId,
		Query:     t.Query,
		Answer:    t.Answer,
		CreatedAt: t.CreatedAt,
	}
}

func (m *ConversationMapper) TurnToModel(t *entity.ConversationTurn) *model.ConversationTurn {
	if t == nil {
		return nil
	}
	return &model.ConversationTurn{
		Id:        t.Id,
		SessionId: t.SessionId,
		Query:     t.Query,
		Answer:    t.Answer,
		CreatedAt: t.CreatedAt,
	}
}

func (m *ConversationMapper) TurnsToEntities(turns []*model.ConversationTurn) []*entity.ConversationTurn {
	entities := make([]*entity.ConversationTurn, len(turns))
	for i, t := range turns {
		entities[i] = m.TurnToEntity(t)
	}
	return entities
}

func (m *ConversationMapper) DecisionToEntity(d *model.RouterDecision) *entity.RouterDecision {
	if d == nil {
		return nil
	}
	return &entity.RouterDecision{
		Id:        d.Id,
		Query:     d.Query,
		Route:     d.Route,
		CreatedAt: d.CreatedAt,
	}
}

func (m *ConversationMapper) DecisionToModel(d *entity.RouterDecision) *model.RouterDecision {
	if d == nil {
		return nil
	}
	return &model.RouterDecision{
		Id:        d.Id,
		Query:     d.Query,
		Route:     d.Route,
		CreatedAt: d.CreatedAt,
	}
}
