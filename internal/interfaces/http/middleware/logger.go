package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"auto-diag.backend/pkg/logger"
)

// Logger logs every request with method, path, status and latency
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.LogRequest(c, c.Request.Method, path, c.Writer.Status(), time.Since(start), c.ClientIP())
	}
}
