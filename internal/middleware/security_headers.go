package middleware

import (
	"github.com/gin-gonic/gin"
)

// contentSecurityPolicy allows the embedded pages and nothing else; mentor
// avatars may come from any https origin
const contentSecurityPolicy = "default-src 'self'; img-src 'self' https: data:; style-src 'self' 'unsafe-inline'; " +
	"script-src 'self'; frame-ancestors 'none'; form-action 'self'; base-uri 'self'"

// SecurityHeadersMiddleware adds security headers to all HTTP responses
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Security-Policy", contentSecurityPolicy)
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

		// pages carry per-user data
		c.Header("Cache-Control", "no-store, private")
		c.Header("Pragma", "no-cache")

		c.Next()
	}
}
