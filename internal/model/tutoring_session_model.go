package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TutoringSession struct {
	Id                 uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LearnerId          *uuid.UUID        `gorm:"type:uuid;index"`
	Topic              string            `gorm:"type:varchar(255)"`
	State              datatypes.JSONMap `gorm:"type:jsonb"`
	Active             bool              `gorm:"default:true;index"`
	StartedAt          time.Time         `gorm:"autoCreateTime"`
	EndedAt            *time.Time
	EndedBy            string            `gorm:"type:varchar(64)"`
	PerformanceSummary datatypes.JSONMap `gorm:"type:jsonb"`
}

func (TutoringSession) TableName() string {
	return "tutoring_sessions"
}
