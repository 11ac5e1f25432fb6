package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// SecurityHeaders sets the standard response hardening headers on every
// request.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Content-Security-Policy", "default-src 'self'; img-src 'self' data:; style-src 'self'")
		c.Next()
	}
}

// CacheControl sets a Cache-Control max-age header, used on the static
// asset and upload routes.
func CacheControl(maxAge time.Duration) gin.HandlerFunc {
	value := fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds()))
	return func(c *gin.Context) {
		c.Header("Cache-Control", value)
		c.Next()
	}
}
