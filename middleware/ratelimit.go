package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"travel-backend/logger"
	"travel-backend/utils"
)

// RateLimit shares one token bucket across every request it guards.
func RateLimit(perMinute, burst int, log *logger.Logger) gin.HandlerFunc {
	if perMinute <= 0 {
		perMinute = 30
	}
	if burst <= 0 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(perMinute)/60, burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			log.LogSecurity("rate_limit_exceeded", c.ClientIP(), logger.Fields{
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			})
			utils.JSONError(c, http.StatusTooManyRequests, "too many requests, please try again shortly")
			c.Abort()
			return
		}
		c.Next()
	}
}
