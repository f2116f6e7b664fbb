package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/infrastructure/metrics"
)

// Metrics records request count and latency per route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.InFlightInc()
		defer metrics.InFlightDec()
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
