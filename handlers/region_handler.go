package handlers

import (
	"context"
	"errors"
	"net/http"

	"crisis-insights-backend/models"
	"crisis-insights-backend/service"

	"github.com/gin-gonic/gin"
)

// RegionReader is the browse surface of the region store.
type RegionReader interface {
	List(ctx context.Context) ([]*models.CrisisRegion, error)
	GetByID(ctx context.Context, id string) (*models.CrisisRegion, error)
}

// SimilarityFinder resolves a region to its most similar neighbors.
type SimilarityFinder interface {
	FindSimilar(ctx context.Context, regionID string) ([]models.SimilarRegion, error)
}

// ReportGenerator produces the structured report for a region.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, regionID string) (*models.GeneratedReport, error)
}

// RegionHandler handles HTTP requests for crisis regions
type RegionHandler struct {
	regions    RegionReader
	similarity SimilarityFinder
	reports    ReportGenerator
}

// NewRegionHandler creates a new region handler
func NewRegionHandler(regions RegionReader, similarity SimilarityFinder, reports ReportGenerator) *RegionHandler {
	return &RegionHandler{
		regions:    regions,
		similarity: similarity,
		reports:    reports,
	}
}

func errorResponse(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondServiceError maps the service failure taxonomy onto response codes.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRegionNotFound):
		errorResponse(c, http.StatusNotFound, "NOT_FOUND", "Region not found")
	case errors.Is(err, service.ErrSearchUnavailable):
		errorResponse(c, http.StatusServiceUnavailable, "SEARCH_UNAVAILABLE", err.Error())
	case errors.Is(err, service.ErrProviderUnavailable):
		errorResponse(c, http.StatusServiceUnavailable, "PROVIDER_UNAVAILABLE", err.Error())
	case errors.Is(err, service.ErrMalformedReport):
		errorResponse(c, http.StatusBadGateway, "MALFORMED_REPORT", err.Error())
	case errors.Is(err, service.ErrMalformedComparison):
		errorResponse(c, http.StatusBadGateway, "MALFORMED_COMPARISON", err.Error())
	default:
		errorResponse(c, http.StatusInternalServerError, "INTERNAL", err.Error())
	}
}

// ListRegions handles GET /api/regions
func (h *RegionHandler) ListRegions(c *gin.Context) {
	regions, err := h.regions.List(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "LIST_FAILED", err.Error())
		return
	}
	if regions == nil {
		regions = []*models.CrisisRegion{}
	}

	c.JSON(http.StatusOK, regions)
}

// GetRegion handles GET /api/regions/:id
func (h *RegionHandler) GetRegion(c *gin.Context) {
	region, err := h.regions.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusNotFound, "NOT_FOUND", "Region not found")
		return
	}

	c.JSON(http.StatusOK, region)
}

// RegionRequest is the body for the similarity and summary endpoints.
type RegionRequest struct {
	RegionID string `json:"region_id" binding:"required"`
}

// FindSimilar handles POST /api/similar
func (h *RegionHandler) FindSimilar(c *gin.Context) {
	var req RegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "Region ID is required")
		return
	}

	results, err := h.similarity.FindSimilar(c.Request.Context(), req.RegionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if results == nil {
		results = []models.SimilarRegion{}
	}

	c.JSON(http.StatusOK, gin.H{"regions": results})
}

// GenerateReport handles POST /api/summary
func (h *RegionHandler) GenerateReport(c *gin.Context) {
	var req RegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "Region ID is required")
		return
	}

	report, err := h.reports.GenerateReport(c.Request.Context(), req.RegionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
