package retriever

import (
	"context"
	"fmt"
	"log"

	"edu-assistant-be/internal/entity"
	"edu-assistant-be/internal/repository/contract"
	"edu-assistant-be/pkg/embedding"
)

const DefaultTopK = 10

// RetrievedPassage is one similarity hit. Score = 1 - Distance.
type RetrievedPassage struct {
	Chunk    *entity.DocumentChunk
	Score    float64
	Distance float64
}

// Retriever embeds a query and runs a vector similarity search over the
// document chunk store.
type Retriever struct {
	embedder  embedding.EmbeddingProvider
	chunks    contract.DocumentChunkRepository
	dimension int
	topK      int
	logger    *log.Logger
}

func NewRetriever(embedder embedding.EmbeddingProvider, chunks contract.DocumentChunkRepository, dimension, topK int, logger *log.Logger) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{
		embedder:  embedder,
		chunks:    chunks,
		dimension: dimension,
		topK:      topK,
		logger:    logger,
	}
}

// Retrieve embeds the query and returns up to topK passages with
// similarity >= threshold, ordered by descending similarity.
func (r *Retriever) Retrieve(ctx context.Context, query string, threshold float64, filter contract.ChunkSearchFilter) ([]*RetrievedPassage, error) {
	resp, err := r.embedder.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	vector := resp.Embedding.Values
	if r.dimension > 0 && len(vector) != r.dimension {
		return nil, fmt.Errorf("embedding dimension mismatch: got %d, expected %d", len(vector), r.dimension)
	}

	scored, err := r.chunks.SearchSimilarWithScore(ctx, vector, r.topK, threshold, filter)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}

	passages := make([]*RetrievedPassage, 0, len(scored))
	for _, s := range scored {
		passages = append(passages, &RetrievedPassage{
			Chunk:    s.Chunk,
			Score:    s.Similarity,
			Distance: 1 - s.Similarity,
		})
	}

	r.logger.Printf("[RETRIEVAL] %d passages above threshold %.2f (topK=%d)", len(passages), threshold, r.topK)

	return passages, nil
}
