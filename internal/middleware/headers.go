package middleware

import (
	"github.com/gin-gonic/gin"
)

// JSONHeaders sets the API's fixed response headers. When allowAllOrigins
// is set, permissive cross-origin headers go on every response, not only
// on requests that carry an Origin header.
func JSONHeaders(allowAllOrigins bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		if allowAllOrigins {
			c.Header("Access-Control-Allow-Origin", "*")
			c.Header("Access-Control-Allow-Headers", "Content-Type")
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		}
		c.Next()
	}
}
