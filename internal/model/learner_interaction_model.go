package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type LearnerInteraction struct {
	Id                uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TutoringSessionId uuid.UUID         `gorm:"type:uuid;not null;index"`
	Type              string            `gorm:"type:varchar(32);not null"`
	Query             string            `gorm:"type:text;not null"`
	Response          string            `gorm:"type:text;not null"`
	Helpful           *bool             `gorm:"type:boolean"`
	DifficultyRating  *int              `gorm:"type:int"`
	ResponseTime      *float64          `gorm:"type:double precision"`
	Metadata          datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt         time.Time         `gorm:"autoCreateTime"`
}

func (LearnerInteraction) TableName() string {
	return "learner_interactions"
}
