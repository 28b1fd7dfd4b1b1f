package vectorstore

import "context"

// Match references a stored region and the raw similarity score the index
// assigned to it against the query vector.
type Match struct {
	ID    string
	Score float64
}

// Index is a nearest-neighbor search surface over stored region embeddings.
//
// All implementations use cosine similarity over unit-length vectors, so raw
// scores fall in [0, 1] for non-degenerate inputs (1.0 = identical). Callers
// converting scores to percentages rely on that range.
type Index interface {
	// Query returns up to k matches ordered by score descending. The query
	// region itself is a valid match and may be included.
	Query(ctx context.Context, vector []float32, k int) ([]Match, error)

	// Upsert stores or replaces the vector for a region identifier.
	Upsert(ctx context.Context, id string, vector []float32) error
}
