package model

import (
	"time"

	"github.com/google/uuid"
)

type RouterDecision struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Query     string    `gorm:"type:text;not null"`
	Route     string    `gorm:"type:varchar(32);not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (RouterDecision) TableName() string {
	return "router_decisions"
}
