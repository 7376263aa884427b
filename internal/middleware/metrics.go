package middleware

import (
	"time"

	"orgchart/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics 记录请求计数和耗时。标签使用路由模板，未匹配路由统一记为 "unmatched"。
func Metrics(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		collector.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
