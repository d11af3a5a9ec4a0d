package model

import (
	"time"

	"github.com/google/uuid"
)

type ConversationTurn struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId *uuid.UUID `gorm:"type:uuid;index"`
	Query     string     `gorm:"type:text;not null"`
	Answer    string     `gorm:"type:text"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

func (ConversationTurn) TableName() string {
	return "conversation_turns"
}
