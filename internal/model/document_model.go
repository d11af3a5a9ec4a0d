package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Document struct {
	Id         uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId  *uuid.UUID        `gorm:"type:uuid;index"`
	Title      string            `gorm:"type:varchar(255);not null"`
	Content    string            `gorm:"type:text"`
	Pages      datatypes.JSONMap `gorm:"type:jsonb"` // pageNumber(string) -> text
	Language   string            `gorm:"type:varchar(32)"`
	SourcePath string            `gorm:"type:text"`
	CreatedAt  time.Time         `gorm:"autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt    `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
