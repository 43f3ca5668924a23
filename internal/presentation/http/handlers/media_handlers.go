package handlers

import (
	"net/http"

	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/media"
	"github.com/gin-gonic/gin"
)

// MediaHandlers serves the generated breaker test image.
type MediaHandlers struct {
	placeholder *media.Placeholder
}

func NewMediaHandlers(placeholder *media.Placeholder) *MediaHandlers {
	return &MediaHandlers{placeholder: placeholder}
}

func (h *MediaHandlers) LandscapeJPEG(c *gin.Context) {
	h.serve(c, media.ContentTypeJPEG, h.placeholder.JPEG)
}

func (h *MediaHandlers) LandscapeWebP(c *gin.Context) {
	h.serve(c, media.ContentTypeWebP, h.placeholder.WebP)
}

func (h *MediaHandlers) serve(c *gin.Context, contentType string, encode func() ([]byte, error)) {
	data, err := encode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, contentType, data)
}
