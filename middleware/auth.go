package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"travel-backend/logger"
	"travel-backend/utils"
)

const (
	ContextAdminID   = "adminId"
	ContextAdminName = "adminUsername"
	ContextAdminRole = "adminRole"
)

// AdminAuth requires a valid Bearer token signed with secret.
func AdminAuth(secret string, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			utils.JSONError(c, http.StatusUnauthorized, "authorization header missing")
			c.Abort()
			return
		}

		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.JSONError(c, http.StatusUnauthorized, "invalid authorization header")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(secret, strings.TrimSpace(parts[1]))
		if err != nil {
			log.LogSecurity("invalid_token", c.ClientIP(), logger.Fields{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			utils.JSONError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextAdminID, claims.AdminID)
		c.Set(ContextAdminName, claims.Username)
		c.Set(ContextAdminRole, claims.Role)
		c.Next()
	}
}

// AdminID returns the authenticated admin's id, or 0 outside AdminAuth.
func AdminID(c *gin.Context) uint {
	if v, ok := c.Get(ContextAdminID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
