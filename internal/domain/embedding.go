package domain

import "context"

// EmbeddingResult is a query embedding with provider token usage.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Embedder produces a fixed-length embedding for a piece of text.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}
