package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"crisis-insights-backend/models"
	"crisis-insights-backend/narrative"
)

// ReportService generates the structured analytical report for a region.
type ReportService struct {
	regions  RegionStore
	narrator narrative.Provider
}

// ReportServiceOption is a functional option for ReportService
type ReportServiceOption func(*ReportService)

// ReportWithRegionStore sets the region store
func ReportWithRegionStore(store RegionStore) ReportServiceOption {
	return func(s *ReportService) {
		s.regions = store
	}
}

// ReportWithNarrativeProvider sets the narrative provider
func ReportWithNarrativeProvider(provider narrative.Provider) ReportServiceOption {
	return func(s *ReportService) {
		s.narrator = provider
	}
}

// NewReportService creates a new report service
func NewReportService(opts ...ReportServiceOption) *ReportService {
	s := &ReportService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateReport produces a four-section report for a region. Provider
// transport failures surface as ErrProviderUnavailable; output that cannot be
// parsed into the expected shape surfaces as ErrMalformedReport. Both stay
// distinct from ErrRegionNotFound so callers can tell "nothing to report on"
// from "report generation broke".
func (s *ReportService) GenerateReport(ctx context.Context, regionID string) (*models.GeneratedReport, error) {
	region, err := s.regions.GetByID(ctx, regionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRegionNotFound, regionID)
	}

	raw, err := s.narrator.Report(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	report, err := parseReport(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReport, err)
	}

	return report, nil
}

// stripCodeFence removes a surrounding markdown code fence (with optional
// language tag) from generated text. Providers wrap JSON output in fences
// often enough that this is part of the parsing contract, not a best-effort
// cleanup.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseReport decodes the provider's raw text into a report and validates
// that all four sections are present and non-empty.
func parseReport(raw string) (*models.GeneratedReport, error) {
	var report models.GeneratedReport
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &report); err != nil {
		return nil, fmt.Errorf("invalid report JSON: %v", err)
	}

	missing := make([]string, 0, 4)
	if strings.TrimSpace(report.Overview) == "" {
		missing = append(missing, "overview")
	}
	if strings.TrimSpace(report.HealthImpact) == "" {
		missing = append(missing, "health_impact")
	}
	if strings.TrimSpace(report.Timeline) == "" {
		missing = append(missing, "timeline")
	}
	if strings.TrimSpace(report.Recommendations) == "" {
		missing = append(missing, "recommendations")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("report missing required fields: %s", strings.Join(missing, ", "))
	}

	return &report, nil
}
