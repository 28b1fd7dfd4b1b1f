package embedding

import (
	"context"
	"fmt"
	"math"
)

// Embedder converts free text into a fixed-length numeric vector. Vectors are
// unit length, so cosine similarity between any two of them lands in [0, 1]
// for related text. One embedder per deployment: vectors from different
// schemes must never be compared.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// normalize scales a vector to unit length in place and returns it.
func normalize(vec []float32) []float32 {
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}
	return vec
}

// fitDimension truncates an oversized vector to dim and renormalizes. Models
// trained with Matryoshka representation keep their semantics under prefix
// truncation; shorter vectors are an error.
func fitDimension(vec []float32, dim int) ([]float32, error) {
	if len(vec) < dim {
		return nil, fmt.Errorf("embedding has %d dimensions, need %d", len(vec), dim)
	}
	if len(vec) > dim {
		vec = vec[:dim]
	}
	return normalize(vec), nil
}
