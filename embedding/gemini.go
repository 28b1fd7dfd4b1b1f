package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
)

const defaultGeminiEmbeddingModel = "text-embedding-004"

// GeminiEmbedder generates embeddings through the Gemini embedding API.
type GeminiEmbedder struct {
	client *genai.Client
	model  string
	dim    int
}

// NewGeminiEmbedder creates an embedder on an already-constructed Gemini
// client. The client is injected so tests and callers control its lifecycle.
func NewGeminiEmbedder(client *genai.Client, model string, dim int) *GeminiEmbedder {
	if model == "" {
		model = defaultGeminiEmbeddingModel
	}
	return &GeminiEmbedder{client: client, model: model, dim: dim}
}

// Dimension returns the configured vector length.
func (e *GeminiEmbedder) Dimension() int { return e.dim }

// Embed returns a unit-length vector for the given text.
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	em := e.client.EmbeddingModel(e.model)
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embedding failed: %w", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("gemini returned an empty embedding")
	}
	return fitDimension(res.Embedding.Values, e.dim)
}
