package handlers

import (
	"io"
	"net/http"
	"strings"

	"crisis-insights-backend/storage"

	"github.com/gin-gonic/gin"
)

// AssetHandler serves map marker and banner images out of asset storage.
type AssetHandler struct {
	assets storage.Storage
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assets storage.Storage) *AssetHandler {
	return &AssetHandler{assets: assets}
}

// GetAsset handles GET /api/assets/*path
func (h *AssetHandler) GetAsset(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" || strings.Contains(path, "..") {
		errorResponse(c, http.StatusBadRequest, "INVALID_PATH", "Invalid asset path")
		return
	}

	reader, err := h.assets.Download(c.Request.Context(), path)
	if err != nil {
		errorResponse(c, http.StatusNotFound, "NOT_FOUND", "Asset not found")
		return
	}
	defer reader.Close()

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		// Response already started; nothing sensible left to send.
		_ = c.Error(err)
	}
}
