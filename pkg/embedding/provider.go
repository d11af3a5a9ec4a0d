package embedding

// EmbeddingProvider defines the interface for generating text embeddings.
// taskType hints the provider at the retrieval role of the text
// ("RETRIEVAL_QUERY" vs "RETRIEVAL_DOCUMENT"); providers may ignore it.
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
}

type EmbeddingResponseEmbedding struct {
	Values []float32 `json:"values"`
}

type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding `json:"embedding"`
}
