package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is the immutable unit of retrieval: a slice of a document
// with its embedding vector.
type DocumentChunk struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	Content    string
	Embedding  []float32
	Page       *int // originating page, when known
	Language   string
	ChunkIndex int
	CreatedAt  time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}
