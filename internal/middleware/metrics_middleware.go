package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"linkshort-go/internal/metrics"
)

// MetricsMiddleware 记录请求耗时直方图
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		metrics.RequestDuration.
			WithLabelValues(c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
