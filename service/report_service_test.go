package service

import (
	"context"
	"errors"
	"testing"

	"crisis-insights-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportNarrator struct {
	raw   string
	err   error
	calls int
}

func (r *reportNarrator) Compare(ctx context.Context, a, b *models.CrisisRegion) (string, error) {
	return "", errors.New("not used in this test")
}

func (r *reportNarrator) Report(ctx context.Context, region *models.CrisisRegion) (string, error) {
	r.calls++
	return r.raw, r.err
}

const validReportJSON = `{
  "overview": "A protracted conflict has displaced millions.",
  "health_impact": "Hospitals operate at a fraction of capacity.",
  "timeline": "Escalation began in early 2022 and continues.",
  "recommendations": "Scale up cross-border medical aid."
}`

func newReportFixture(raw string) (*ReportService, *stubStore, *reportNarrator) {
	store := &stubStore{regions: map[string]*models.CrisisRegion{
		"a": testRegion("a", "Alpha"),
	}}
	narrator := &reportNarrator{raw: raw}
	svc := NewReportService(
		ReportWithRegionStore(store),
		ReportWithNarrativeProvider(narrator),
	)
	return svc, store, narrator
}

func TestGenerateReport_ParsesBareJSON(t *testing.T) {
	svc, _, _ := newReportFixture(validReportJSON)

	report, err := svc.GenerateReport(context.Background(), "a")

	require.NoError(t, err)
	assert.Equal(t, "A protracted conflict has displaced millions.", report.Overview)
	assert.Equal(t, "Hospitals operate at a fraction of capacity.", report.HealthImpact)
	assert.Equal(t, "Escalation began in early 2022 and continues.", report.Timeline)
	assert.Equal(t, "Scale up cross-border medical aid.", report.Recommendations)
}

func TestGenerateReport_StripsJSONCodeFence(t *testing.T) {
	svc, _, _ := newReportFixture("```json\n" + validReportJSON + "\n```")

	report, err := svc.GenerateReport(context.Background(), "a")

	require.NoError(t, err)
	assert.NotEmpty(t, report.Overview)
}

func TestGenerateReport_StripsBareCodeFence(t *testing.T) {
	svc, _, _ := newReportFixture("```\n" + validReportJSON + "\n```")

	report, err := svc.GenerateReport(context.Background(), "a")

	require.NoError(t, err)
	assert.NotEmpty(t, report.Recommendations)
}

func TestGenerateReport_UnknownRegionReturnsNotFound(t *testing.T) {
	svc, _, narrator := newReportFixture(validReportJSON)

	_, err := svc.GenerateReport(context.Background(), "missing")

	require.ErrorIs(t, err, ErrRegionNotFound)
	assert.Equal(t, 0, narrator.calls)
}

func TestGenerateReport_ProviderFailureIsProviderUnavailable(t *testing.T) {
	svc, _, narrator := newReportFixture("")
	narrator.err = errors.New("deadline exceeded")

	_, err := svc.GenerateReport(context.Background(), "a")

	require.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestGenerateReport_InvalidJSONIsMalformed(t *testing.T) {
	svc, _, _ := newReportFixture("The situation in Alpha is dire and requires attention.")

	_, err := svc.GenerateReport(context.Background(), "a")

	require.ErrorIs(t, err, ErrMalformedReport)
}

func TestGenerateReport_MissingSectionIsMalformed(t *testing.T) {
	svc, _, _ := newReportFixture(`{
  "overview": "Something happened.",
  "health_impact": "Hospitals closed.",
  "timeline": "2022 onwards."
}`)

	_, err := svc.GenerateReport(context.Background(), "a")

	require.ErrorIs(t, err, ErrMalformedReport)
	assert.Contains(t, err.Error(), "recommendations")
}

func TestGenerateReport_BlankSectionIsMalformed(t *testing.T) {
	svc, _, _ := newReportFixture(`{
  "overview": "  ",
  "health_impact": "Hospitals closed.",
  "timeline": "2022 onwards.",
  "recommendations": "Send aid."
}`)

	_, err := svc.GenerateReport(context.Background(), "a")

	require.ErrorIs(t, err, ErrMalformedReport)
	assert.Contains(t, err.Error(), "overview")
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fence with surrounding whitespace", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
		{"single line fence", "```json{\"a\":1}```", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFence(tt.in))
		})
	}
}
