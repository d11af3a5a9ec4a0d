package mapper

import (
	"encoding/json"
	"time"

	"edu-assistant-be/internal/entity"
	"edu-assistant-be/internal/model"

	"gorm.io/datatypes"
)

// LearnerMapper covers the tutoring aggregate: learner profiles, tutoring
// sessions, and interactions. List fields ride in JSONB columns.
type LearnerMapper struct{}

func NewLearnerMapper() *LearnerMapper {
	return &LearnerMapper{}
}

func (m *LearnerMapper) ProfileToEntity(p *model.LearnerProfile) *entity.LearnerProfile {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	var struggles []string
	_ = json.Unmarshal(p.Struggles, &struggles)
	var mastered []string
	_ = json.Unmarshal(p.MasteredTopics, &mastered)
	var styles []entity.ExplanationStylePreference
	_ = json.Unmarshal(p.PreferredExplanationStyles, &styles)

	return &entity.LearnerProfile{
		Id:                         p.Id,
		Grade:                      p.Grade,
		LearningStyle:              p.LearningStyle,
		PreferredLanguage:          p.PreferredLanguage,
		DifficultyPreference:       p.DifficultyPreference,
		AccuracyRate:               p.AccuracyRate,
		AvgResponseTime:            p.AvgResponseTime,
		CompletionRate:             p.CompletionRate,
		TotalSessions:              p.TotalSessions,
		Struggles:                  struggles,
		MasteredTopics:             mastered,
		PreferredExplanationStyles: styles,
		CreatedAt:                  p.CreatedAt,
		UpdatedAt:                  updatedAt,
	}
}

func (m *LearnerMapper) ProfileToModel(p *entity.LearnerProfile) *model.LearnerProfile {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	struggles, _ := json.Marshal(p.Struggles)
	mastered, _ := json.Marshal(p.MasteredTopics)
	styles, _ := json.Marshal(p.PreferredExplanationStyles)

	return &model.LearnerProfile{
		Id:                         p.Id,
		Grade:                      p.Grade,
		LearningStyle:              p.LearningStyle,
		PreferredLanguage:          p.PreferredLanguage,
		DifficultyPreference:       p.DifficultyPreference,
		AccuracyRate:               p.AccuracyRate,
		AvgResponseTime:            p.AvgResponseTime,
		CompletionRate:             p.CompletionRate,
		TotalSessions:              p.TotalSessions,
		Struggles:                  datatypes.JSON(struggles),
		MasteredTopics:             datatypes.JSON(mastered),
		PreferredExplanationStyles: datatypes.JSON(styles),
		CreatedAt:                  p.CreatedAt,
		UpdatedAt:                  updatedAt,
	}
}

func (m *LearnerMapper) SessionToEntity(s *model.TutoringSession) *entity.TutoringSession {
	if s == nil {
		return nil
	}

	return &entity.TutoringSession{
		Id:                 s.Id,
		LearnerId:          s.LearnerId,
		Topic:              s.Topic,
		State:              map[string]interface{}(s.State),
		Active:             s.Active,
		StartedAt:          s.StartedAt,
		EndedAt:            s.EndedAt,
		EndedBy:            s.EndedBy,
		PerformanceSummary: map[string]interface{}(s.PerformanceSummary),
	}
}

func (m *LearnerMapper) SessionToModel(s *entity.TutoringSession) *model.TutoringSession {
	if s == nil {
		return nil
	}

	return &model.TutoringSession{
		Id:                 s.Id,
		LearnerId:          s.LearnerId,
		Topic:              s.Topic,
		State:              datatypes.JSONMap(s.State),
		Active:             s.Active,
		StartedAt:          s.StartedAt,
		EndedAt:            s.EndedAt,
		EndedBy:            s.EndedBy,
		PerformanceSummary: datatypes.JSONMap(s.PerformanceSummary),
	}
}

func (m *LearnerMapper) SessionsToEntities(sessions []*model.TutoringSession) []*entity.TutoringSession {
	entities := make([]*entity.TutoringSession, len(sessions))
	for i, s := range sessions {
		entities[i] = m.SessionToEntity(s)
	}
	return entities
}

func (m *LearnerMapper) InteractionToEntity(i *model.LearnerInteraction) *entity.LearnerInteraction {
	if i == nil {
		return nil
	}
	return &entity.LearnerInteraction{
		Id:                i.Id,
		TutoringSessionId: i.TutoringSessionId,
		Type:              i.Type,
		Query:             i.Query,
		Response:          i.Response,
		Helpful:           i.Helpful,
		DifficultyRating:  i.DifficultyRating,
		ResponseTime:      i.ResponseTime,
		Metadata:          map[string]interface{}(i.Metadata),
		CreatedAt:         i.CreatedAt,
	}
}

func (m *LearnerMapper) InteractionToModel(i *entity.LearnerInteraction) *model.LearnerInteraction {
	if i == nil {
		return nil
	}
	return &model.LearnerInteraction{
		Id:                i.Id,
		TutoringSessionId: i.TutoringSessionId,
		Type:              i.Type,
		Query:             i.Query,
		Response:          i.Response,
		Helpful:           i.Helpful,
		DifficultyRating:  i.DifficultyRating,
		ResponseTime:      i.ResponseTime,
		Metadata:          datatypes.JSONMap(i.Metadata),
		CreatedAt:         i.CreatedAt,
	}
}

func (m *LearnerMapper) InteractionsToEntities(items []*model.LearnerInteraction) []*entity.LearnerInteraction {
	entities := make([]*entity.LearnerInteraction, len(items))
	for i, it := range items {
		entities[i] = m.InteractionToEntity(it)
	}
	return entities
}
