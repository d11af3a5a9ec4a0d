package rerank

import "context"

// RankedPassage is a passage annotated with its rerank score and rank.
type RankedPassage struct {
	Index int     // position in the input slice
	Text  string
	Score float64
	Rank  int // 0-based, by descending score
}

// Reranker orders candidate passages by relevance to a query using a
// cross-encoder style scoring model. Optional capability: callers must
// tolerate its absence.
type Reranker interface {
	Rerank(ctx context.Context, query string, passages []string, topN int) ([]RankedPassage, error)
}
