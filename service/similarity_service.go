package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"crisis-insights-backend/models"
	"crisis-insights-backend/narrative"
	"crisis-insights-backend/vectorstore"

	"golang.org/x/sync/errgroup"
)

const (
	// One extra candidate is requested because the target's own vector is, by
	// construction, its closest match and usually comes back first.
	similarCandidates = 4
	maxSimilarRegions = 3

	// Never report a 100% match; an exact score is a display edge case.
	maxSimilarityPercent = 99.9
)

// RegionStore resolves region identifiers to stored regions. Identifiers are
// opaque: persisted keys and placeholder-prefixed strings look the same here.
type RegionStore interface {
	GetByID(ctx context.Context, id string) (*models.CrisisRegion, error)
}

// SimilarityService finds the regions most similar to a target region and
// enriches each neighbor with a generated comparison.
type SimilarityService struct {
	regions  RegionStore
	index    vectorstore.Index
	narrator narrative.Provider
}

// SimilarityServiceOption is a functional option for SimilarityService
type SimilarityServiceOption func(*SimilarityService)

// WithRegionStore sets the region store
func WithRegionStore(store RegionStore) SimilarityServiceOption {
	return func(s *SimilarityService) {
		s.regions = store
	}
}

// WithVectorIndex sets the vector index
func WithVectorIndex(index vectorstore.Index) SimilarityServiceOption {
	return func(s *SimilarityService) {
		s.index = index
	}
}

// WithNarrativeProvider sets the narrative provider
func WithNarrativeProvider(provider narrative.Provider) SimilarityServiceOption {
	return func(s *SimilarityService) {
		s.narrator = provider
	}
}

// NewSimilarityService creates a new similarity service
func NewSimilarityService(opts ...SimilarityServiceOption) *SimilarityService {
	s := &SimilarityService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// percentage converts a raw index score to a similarity percentage. Raw
// scores are cosine similarities in [0, 1] (see vectorstore.Index), so the
// scale factor is 100; the clamp absorbs float drift on either end.
func percentage(raw float64) float64 {
	pct := raw * 100
	if pct > maxSimilarityPercent {
		return maxSimilarityPercent
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// FindSimilar returns at most three regions similar to the given one, ordered
// by descending similarity, each with a generated comparison narrative. The
// target region itself is never included. A failure of any single comparison
// fails the whole request: partial result sets would misrepresent the ranking.
func (s *SimilarityService) FindSimilar(ctx context.Context, regionID string) ([]models.SimilarRegion, error) {
	target, err := s.regions.GetByID(ctx, regionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRegionNotFound, regionID)
	}

	if len(target.Embedding) == 0 {
		return nil, fmt.Errorf("%w: region %s has no stored embedding", ErrSearchUnavailable, regionID)
	}

	matches, err := s.index.Query(ctx, target.Embedding, similarCandidates)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}

	// Drop the target from its own candidate list. Whether the index returns
	// it depends on the backend, so the filter keeps this robust either way.
	candidates := make([]vectorstore.Match, 0, len(matches))
	for _, m := range matches {
		if m.ID == target.ID {
			continue
		}
		candidates = append(candidates, m)
	}

	// Index order is already similarity-descending; the stable sort enforces
	// it regardless of backend quirks.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > maxSimilarRegions {
		candidates = candidates[:maxSimilarRegions]
	}

	// Comparison calls are independent, so they fan out concurrently and each
	// result lands in the slot of its originating candidate. Completion order
	// carries no meaning.
	results := make([]models.SimilarRegion, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	for i, match := range candidates {
		g.Go(func() error {
			candidate, err := s.regions.GetByID(gctx, match.ID)
			if err != nil {
				// The index referenced a region the store cannot resolve; the
				// search layer is out of sync, not the client.
				return fmt.Errorf("%w: resolving candidate %s: %v", ErrSearchUnavailable, match.ID, err)
			}

			comparison, err := s.narrator.Compare(gctx, target, candidate)
			if err != nil {
				return fmt.Errorf("%w: comparing %s with %s: %v", ErrProviderUnavailable, target.ID, candidate.ID, err)
			}
			comparison = strings.TrimSpace(comparison)
			if comparison == "" {
				return fmt.Errorf("%w: empty comparison for %s", ErrMalformedComparison, candidate.ID)
			}

			candidate.Embedding = nil // not part of the response
			results[i] = models.SimilarRegion{
				Region:          candidate,
				SimilarityScore: percentage(match.Score),
				Comparison:      comparison,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
