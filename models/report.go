package models

// GeneratedReport is the structured analytical report for a single region.
// Created per request from a narrative provider call and never persisted.
type GeneratedReport struct {
	Overview        string `json:"overview"`
	HealthImpact    string `json:"health_impact"`
	Timeline        string `json:"timeline"`
	Recommendations string `json:"recommendations"`
}

// SimilarRegion pairs a neighboring region with its similarity percentage and
// the generated comparison against the queried region. Ephemeral, per request.
type SimilarRegion struct {
	Region *CrisisRegion `json:"region"`
	// SimilarityScore is a percentage in [0, 99.9]; an exact 100% match is
	// clamped rather than reported.
	SimilarityScore float64 `json:"similarity_score"`
	Comparison      string  `json:"comparison"`
}
