package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

// JSONPaged is JSONSuccess for list endpoints.
func JSONPaged(c *gin.Context, code int, data interface{}, pagination interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data, "pagination": pagination})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}
