package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// PlaceholderIDPrefix marks region identifiers minted client-side before the
// region has been persisted. Lookups must accept these alongside store-assigned
// keys, so identifiers are treated as opaque strings everywhere.
const PlaceholderIDPrefix = "new-"

// Coordinates is a latitude/longitude pair used only for map display.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Value implements driver.Valuer for JSONB
func (c Coordinates) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSONB
func (c *Coordinates) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, c)
}

// RelatedArticle is a press reference attached to a region.
type RelatedArticle struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Date  string `json:"date"`
}

// RelatedArticles is an ordered list of article references stored as JSONB.
type RelatedArticles []RelatedArticle

// Value implements driver.Valuer for JSONB
func (a RelatedArticles) Value() (driver.Value, error) {
	if a == nil {
		return json.Marshal(RelatedArticles{})
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSONB
func (a *RelatedArticles) Scan(value interface{}) error {
	if value == nil {
		*a = RelatedArticles{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		*a = RelatedArticles{}
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// CrisisRegion is the unit of analysis: one humanitarian crisis area with its
// descriptive profile and the embedding vector computed from it at ingest time.
type CrisisRegion struct {
	ID                    string          `json:"id"`
	Region                string          `json:"region"`
	Country               string          `json:"country"`
	Type                  string          `json:"type"`
	Summary               string          `json:"summary"`
	Displaced             int64           `json:"displaced"`
	Casualties            int64           `json:"casualties"`
	HealthStatus          string          `json:"health_status"`
	StartDate             string          `json:"start_date"`
	LastUpdated           string          `json:"last_updated"`
	SeverityLevel         int             `json:"severity_level"`
	AffectedPopulation    int64           `json:"affected_population"`
	ResourcesNeeded       []string        `json:"resources_needed"`
	MediaCoverage         int             `json:"media_coverage"`
	InternationalResponse string          `json:"international_response"`
	Coordinates           Coordinates     `json:"coordinates"`
	KeyOrganizations      []string        `json:"key_organizations"`
	RelatedArticles       RelatedArticles `json:"related_articles"`

	// Embedding is a fixed-length unit vector. All regions in a deployment
	// share one embedding scheme or similarity scores are meaningless.
	Embedding []float32 `json:"embedding,omitempty"`
}

// Validate checks the ranges the data model promises before a region is stored.
func (r *CrisisRegion) Validate() error {
	if strings.TrimSpace(r.Region) == "" {
		return fmt.Errorf("region name is required")
	}
	if strings.TrimSpace(r.Country) == "" {
		return fmt.Errorf("country is required")
	}
	if r.SeverityLevel < 1 || r.SeverityLevel > 10 {
		return fmt.Errorf("severity_level must be between 1 and 10, got %d", r.SeverityLevel)
	}
	if r.Displaced < 0 {
		return fmt.Errorf("displaced must be non-negative")
	}
	if r.Casualties < 0 {
		return fmt.Errorf("casualties must be non-negative")
	}
	if r.AffectedPopulation < 0 {
		return fmt.Errorf("affected_population must be non-negative")
	}
	return nil
}

// ProfileText renders the textual profile the embedding is generated from.
// Changing this changes the embedding scheme, so seeded and refreshed vectors
// must always come through here.
func (r *CrisisRegion) ProfileText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s (%s). %s", r.Region, r.Country, r.Type, r.Summary)
	fmt.Fprintf(&b, " Health status: %s.", r.HealthStatus)
	fmt.Fprintf(&b, " Severity %d/10, %d displaced, %d casualties, %d affected.",
		r.SeverityLevel, r.Displaced, r.Casualties, r.AffectedPopulation)
	if len(r.ResourcesNeeded) > 0 {
		fmt.Fprintf(&b, " Resources needed: %s.", strings.Join(r.ResourcesNeeded, ", "))
	}
	return b.String()
}
