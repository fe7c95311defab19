package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orbitlettings/orbit-api/internal/observability/metrics"
)

// Metrics creates a middleware that records request count and duration per
// route. The route template is used rather than the raw path so that id
// query parameters don't explode label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.ObserveHTTPRequest(c.Request.Method, path, status, time.Since(start))
	}
}
