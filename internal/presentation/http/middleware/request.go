package middleware

import (
	"time"

	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/security"
	"github.com/gin-gonic/gin"
)

const RequestIDHeader = "X-Request-ID"

// RequestObserver records finished requests.
type RequestObserver interface {
	ObserveRequest(route, method string, status int, duration time.Duration)
}

// RequestID tags every request with a ULID unless the client sent one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = security.GenerateULID()
		}
		c.Set("requestId", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs each request on the HTTP channel and reports it to
// observer.
func RequestLogger(logger *logging.ChanneledLogger, observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		route := c.FullPath()

		if observer != nil {
			observer.ObserveRequest(route, c.Request.Method, status, duration)
		}

		log := logger.HTTP().Debug
		if status >= 500 {
			log = logger.HTTP().Error
		}
		log("Request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", route,
			"status", status,
			"duration", duration,
			"requestId", c.GetString("requestId"))
	}
}
