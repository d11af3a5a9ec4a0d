package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type LearnerProfile struct {
	Id                         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Grade                      int            `gorm:"default:8"`
	LearningStyle              string         `gorm:"type:varchar(32);default:'Mixed'"`
	PreferredLanguage          string         `gorm:"type:varchar(32);default:'English'"`
	DifficultyPreference       string         `gorm:"type:varchar(32);default:'medium'"`
	AccuracyRate               float64        `gorm:"default:0.7"`
	AvgResponseTime            float64        `gorm:"default:15.0"`
	CompletionRate             float64        `gorm:"default:0.8"`
	TotalSessions              int            `gorm:"default:0"`
	Struggles                  datatypes.JSON `gorm:"type:jsonb"`
	MasteredTopics             datatypes.JSON `gorm:"type:jsonb"`
	PreferredExplanationStyles datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt                  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt                  time.Time      `gorm:"autoUpdateTime"`
}

func (LearnerProfile) TableName() string {
	return "learner_profiles"
}
