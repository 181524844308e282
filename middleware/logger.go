package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"travel-backend/logger"
)

// Logger writes one structured line per request.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		log.LogRequest(c.Request.Method, path, c.ClientIP(), c.Writer.Status(), time.Since(start).Milliseconds())
	}
}
