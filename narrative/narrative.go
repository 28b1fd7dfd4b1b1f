package narrative

import (
	"context"

	"crisis-insights-backend/models"
)

// Provider generates natural-language analysis for crisis regions. The output
// is a textual generation, not a typed API: callers must parse and validate
// anything structural themselves.
type Provider interface {
	// Compare returns a short narrative contrasting two regions.
	Compare(ctx context.Context, a, b *models.CrisisRegion) (string, error)

	// Report returns raw text expected to contain a JSON object with the
	// overview, health_impact, timeline and recommendations fields. The text
	// may be wrapped in markdown code fences.
	Report(ctx context.Context, region *models.CrisisRegion) (string, error)
}
