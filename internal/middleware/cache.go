package middleware

import (
	"github.com/gin-gonic/gin"
)

// NoStore marks responses as uncacheable. The question set changes on every
// save, so intermediaries must always revalidate.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
