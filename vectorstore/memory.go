package vectorstore

import (
	"context"
	"fmt"

	chromem "github.com/philippgille/chromem-go"
)

// MemoryIndex implements Index on an in-process chromem collection. Intended
// for development and tests; contents do not survive a restart.
type MemoryIndex struct {
	collection *chromem.Collection
}

// NewMemoryIndex creates an empty in-memory index.
func NewMemoryIndex() (*MemoryIndex, error) {
	db := chromem.NewDB()
	collection, err := db.CreateCollection("regions", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory collection: %w", err)
	}
	return &MemoryIndex{collection: collection}, nil
}

// Upsert stores or replaces the vector for a region identifier.
func (m *MemoryIndex) Upsert(ctx context.Context, id string, vector []float32) error {
	err := m.collection.AddDocument(ctx, chromem.Document{
		ID:        id,
		Content:   id,
		Embedding: vector,
	})
	if err != nil {
		return fmt.Errorf("failed to add document to in-memory index: %w", err)
	}
	return nil
}

// Query returns up to k matches ordered by similarity descending.
func (m *MemoryIndex) Query(ctx context.Context, vector []float32, k int) ([]Match, error) {
	// chromem rejects result counts above the collection size
	if count := m.collection.Count(); k > count {
		k = count
	}
	if k == 0 {
		return nil, nil
	}

	results, err := m.collection.QueryEmbedding(ctx, vector, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("in-memory index query failed: %w", err)
	}

	matches := make([]Match, 0, len(results))
	for _, r := range results {
		matches = append(matches, Match{
			ID:    r.ID,
			Score: float64(r.Similarity),
		})
	}

	return matches, nil
}
