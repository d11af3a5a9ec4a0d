package dto

import (
	"time"

	"github.com/google/uuid"
)

type UploadDocumentRequest struct {
	SessionId *uuid.UUID        `json:"session_id,omitempty"`
	Title     string            `json:"title" validate:"required"`
	Content   string            `json:"content"`
	Pages     map[string]string `json:"pages,omitempty"` // page number (as string) -> page text
	Language  string            `json:"language,omitempty"`
}

type UploadDocumentResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowDocumentResponse struct {
	Id        uuid.UUID  `json:"id"`
	SessionId *uuid.UUID `json:"session_id,omitempty"`
	Title     string     `json:"title"`
	Language  string     `json:"language,omitempty"`
	PageCount int        `json:"page_count"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
