package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type SendMessageRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Message   string    `json:"message"`
}

// SendMessageResponse is the routed result of one utterance. Route names
// the action or query path that handled it; Data carries route-specific
// payloads such as page content, notes or bookmarks.
type SendMessageResponse struct {
	SessionId uuid.UUID              `json:"session_id"`
	Intent    string                 `json:"intent"` // "action" | "query"
	Route     string                 `json:"route"`
	Status    string                 `json:"status"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

type GetHistoryResponse struct {
	Id        uuid.UUID `json:"id"`
	Query     string    `json:"query"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

// PublishIngestDocumentMessage is the payload of the document ingestion
// topic consumed by the embedding worker.
type PublishIngestDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
