package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sumeeth742/university/internal/metrics"
)

// Metrics records request counts and latency per response.
func Metrics(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		if collector == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		collector.RecordHTTPRequest(c.Writer.Status(), c.Request.Method, time.Since(start))
	}
}
