package httpx

import (
	"strconv"
	"time"

	"github.com/Gunvolt24/telecom_cart/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// unmatchedPath — метка для запросов мимо маршрутов, чтобы не плодить серии по сырым URL.
const unmatchedPath = "unmatched"

// MetricsMiddleware — счётчик и длительность запросов по шаблону маршрута.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = unmatchedPath
		}
		duration := float64(time.Since(start).Milliseconds())

		metrics.HTTPRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
	}
}
