// Package handlers provides the HTTP handlers of the preview server
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandlers serves liveness and metrics.
type SystemHandlers struct {
	started time.Time
	metrics http.Handler
}

func NewSystemHandlers(metrics http.Handler) *SystemHandlers {
	return &SystemHandlers{started: time.Now(), metrics: metrics}
}

func (h *SystemHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}

func (h *SystemHandlers) Metrics(c *gin.Context) {
	h.metrics.ServeHTTP(c.Writer, c.Request)
}
