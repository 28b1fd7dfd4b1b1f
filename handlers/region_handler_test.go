package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crisis-insights-backend/models"
	"crisis-insights-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegionReader struct {
	regions []*models.CrisisRegion
	listErr error
}

func (f *fakeRegionReader) List(ctx context.Context) ([]*models.CrisisRegion, error) {
	return f.regions, f.listErr
}

func (f *fakeRegionReader) GetByID(ctx context.Context, id string) (*models.CrisisRegion, error) {
	for _, r := range f.regions {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, errors.New("no rows in result set")
}

type fakeSimilarityFinder struct {
	results []models.SimilarRegion
	err     error
}

func (f *fakeSimilarityFinder) FindSimilar(ctx context.Context, regionID string) ([]models.SimilarRegion, error) {
	return f.results, f.err
}

type fakeReportGenerator struct {
	report *models.GeneratedReport
	err    error
}

func (f *fakeReportGenerator) GenerateReport(ctx context.Context, regionID string) (*models.GeneratedReport, error) {
	return f.report, f.err
}

func setupRouter(reader RegionReader, finder SimilarityFinder, reports ReportGenerator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewRegionHandler(reader, finder, reports)
	r := gin.New()
	api := r.Group("/api")
	{
		api.GET("/regions", h.ListRegions)
		api.GET("/regions/:id", h.GetRegion)
		api.POST("/similar", h.FindSimilar)
		api.POST("/summary", h.GenerateReport)
	}
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListRegions_ReturnsArray(t *testing.T) {
	reader := &fakeRegionReader{regions: []*models.CrisisRegion{
		{ID: "a", Region: "Alpha", Country: "Testland", SeverityLevel: 9},
		{ID: "b", Region: "Beta", Country: "Testland", SeverityLevel: 7},
	}}
	r := setupRouter(reader, &fakeSimilarityFinder{}, &fakeReportGenerator{})

	w := doRequest(t, r, http.MethodGet, "/api/regions", "")

	require.Equal(t, http.StatusOK, w.Code)
	var got []models.CrisisRegion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Alpha", got[0].Region)
}

func TestListRegions_EmptyStoreReturnsEmptyArray(t *testing.T) {
	r := setupRouter(&fakeRegionReader{}, &fakeSimilarityFinder{}, &fakeReportGenerator{})

	w := doRequest(t, r, http.MethodGet, "/api/regions", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestGetRegion_UnknownIDReturns404(t *testing.T) {
	r := setupRouter(&fakeRegionReader{}, &fakeSimilarityFinder{}, &fakeReportGenerator{})

	w := doRequest(t, r, http.MethodGet, "/api/regions/nope", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestFindSimilar_MissingRegionIDReturns400(t *testing.T) {
	r := setupRouter(&fakeRegionReader{}, &fakeSimilarityFinder{}, &fakeReportGenerator{})

	w := doRequest(t, r, http.MethodPost, "/api/similar", `{}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
}

func TestFindSimilar_WrapsResultsInRegionsKey(t *testing.T) {
	finder := &fakeSimilarityFinder{results: []models.SimilarRegion{
		{
			Region:          &models.CrisisRegion{ID: "b", Region: "Beta", Country: "Testland", SeverityLevel: 7},
			SimilarityScore: 91.2,
			Comparison:      "Both regions face severe displacement.",
		},
	}}
	r := setupRouter(&fakeRegionReader{}, finder, &fakeReportGenerator{})

	w := doRequest(t, r, http.MethodPost, "/api/similar", `{"region_id":"a"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Regions []models.SimilarRegion `json:"regions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Regions, 1)
	assert.Equal(t, "Beta", got.Regions[0].Region.Region)
	assert.InDelta(t, 91.2, got.Regions[0].SimilarityScore, 1e-9)
	assert.Equal(t, "Both regions face severe displacement.", got.Regions[0].Comparison)
}

func TestFindSimilar_StatusCodePerFailure(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", service.ErrRegionNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"search down", service.ErrSearchUnavailable, http.StatusServiceUnavailable, "SEARCH_UNAVAILABLE"},
		{"provider down", service.ErrProviderUnavailable, http.StatusServiceUnavailable, "PROVIDER_UNAVAILABLE"},
		{"empty comparison", service.ErrMalformedComparison, http.StatusBadGateway, "MALFORMED_COMPARISON"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(&fakeRegionReader{}, &fakeSimilarityFinder{err: tt.err}, &fakeReportGenerator{})

			w := doRequest(t, r, http.MethodPost, "/api/similar", `{"region_id":"a"}`)

			require.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantCode)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}

func TestGenerateReport_ReturnsReportVerbatim(t *testing.T) {
	reports := &fakeReportGenerator{report: &models.GeneratedReport{
		Overview:        "Overview text.",
		HealthImpact:    "Health text.",
		Timeline:        "Timeline text.",
		Recommendations: "Recommendations text.",
	}}
	r := setupRouter(&fakeRegionReader{}, &fakeSimilarityFinder{}, reports)

	w := doRequest(t, r, http.MethodPost, "/api/summary", `{"region_id":"a"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var got models.GeneratedReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Overview text.", got.Overview)
	assert.Equal(t, "Health text.", got.HealthImpact)
	assert.Equal(t, "Timeline text.", got.Timeline)
	assert.Equal(t, "Recommendations text.", got.Recommendations)
}

func TestGenerateReport_MalformedReportReturns502(t *testing.T) {
	reports := &fakeReportGenerator{err: service.ErrMalformedReport}
	r := setupRouter(&fakeRegionReader{}, &fakeSimilarityFinder{}, reports)

	w := doRequest(t, r, http.MethodPost, "/api/summary", `{"region_id":"a"}`)

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "MALFORMED_REPORT")
}

func TestGenerateReport_MissingBodyReturns400(t *testing.T) {
	r := setupRouter(&fakeRegionReader{}, &fakeSimilarityFinder{}, &fakeReportGenerator{})

	w := doRequest(t, r, http.MethodPost, "/api/summary", "")

	require.Equal(t, http.StatusBadRequest, w.Code)
}
