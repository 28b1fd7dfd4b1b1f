package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegion() *CrisisRegion {
	return &CrisisRegion{
		ID:                 "r1",
		Region:             "Eastern Donbas",
		Country:            "Ukraine",
		Type:               "Armed Conflict",
		Summary:            "Ongoing armed conflict causing major humanitarian impact.",
		Displaced:          2800000,
		Casualties:         14200,
		HealthStatus:       "Critical with limited access to healthcare.",
		SeverityLevel:      9,
		AffectedPopulation: 5700000,
		ResourcesNeeded:    []string{"Medical supplies", "Shelter"},
	}
}

func TestValidate_AcceptsCompleteRegion(t *testing.T) {
	assert.NoError(t, validRegion().Validate())
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CrisisRegion)
	}{
		{"blank region name", func(r *CrisisRegion) { r.Region = "  " }},
		{"blank country", func(r *CrisisRegion) { r.Country = "" }},
		{"severity too low", func(r *CrisisRegion) { r.SeverityLevel = 0 }},
		{"severity too high", func(r *CrisisRegion) { r.SeverityLevel = 11 }},
		{"negative displaced", func(r *CrisisRegion) { r.Displaced = -1 }},
		{"negative casualties", func(r *CrisisRegion) { r.Casualties = -1 }},
		{"negative affected", func(r *CrisisRegion) { r.AffectedPopulation = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region := validRegion()
			tt.mutate(region)
			assert.Error(t, region.Validate())
		})
	}
}

func TestProfileText_ContainsKeyFields(t *testing.T) {
	text := validRegion().ProfileText()

	assert.Contains(t, text, "Eastern Donbas, Ukraine (Armed Conflict)")
	assert.Contains(t, text, "Severity 9/10")
	assert.Contains(t, text, "2800000 displaced")
	assert.Contains(t, text, "Medical supplies, Shelter")
}

func TestProfileText_OmitsEmptyResources(t *testing.T) {
	region := validRegion()
	region.ResourcesNeeded = nil

	assert.NotContains(t, region.ProfileText(), "Resources needed")
}

func TestCoordinates_JSONBRoundTrip(t *testing.T) {
	original := Coordinates{Lat: 48.0159, Lng: 37.8028}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned Coordinates
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)
}

func TestRelatedArticles_JSONBRoundTrip(t *testing.T) {
	original := RelatedArticles{
		{Title: "Healthcare Systems Strained", URL: "https://example.com/a1", Date: "2025-04-20"},
	}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned RelatedArticles
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)
}

func TestRelatedArticles_NilScansToEmptyList(t *testing.T) {
	var articles RelatedArticles
	require.NoError(t, articles.Scan(nil))
	assert.NotNil(t, articles)
	assert.Empty(t, articles)
}

func TestRelatedArticles_NilMarshalsAsEmptyArray(t *testing.T) {
	var articles RelatedArticles

	value, err := articles.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), value)
}
