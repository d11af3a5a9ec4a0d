package contract

import (
	"context"

	"edu-assistant-be/internal/entity"
	"edu-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredDocumentChunk wraps a chunk with its computed similarity.
// Similarity = 1 - cosine distance, so 1.0 means identical direction.
type ScoredDocumentChunk struct {
	Chunk      *entity.DocumentChunk
	Similarity float64
}

// ChunkSearchFilter narrows a similarity search. Nil fields are ignored;
// SessionId filters through the owning document.
type ChunkSearchFilter struct {
	DocumentId *uuid.UUID
	SessionId  *uuid.UUID
}

type DocumentChunkRepository interface {
	Create(ctx context.Context, chunk *entity.DocumentChunk) error
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentChunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns chunks with similarity >= threshold,
	// ordered by descending similarity, at most limit rows.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64, filter ChunkSearchFilter) ([]*ScoredDocumentChunk, error)
}
