package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/docdrop/pkg/metrics"
)

// PrometheusMiddleware Prometheus监控中间件. 以路由模板（FullPath）为
// 标签，避免 token、文件名等路径参数撑爆标签基数.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		// 执行下一个中间件/处理器
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		// 记录请求计数
		metrics.RequestCounter.WithLabelValues(method, path).Inc()

		// 记录请求持续时间
		duration := time.Since(start).Seconds()
		metrics.RequestDuration.WithLabelValues(method, path).Observe(duration)
	}
}
