package middleware

import (
	"strings"

	"github.com/getmentor/mentorship-portal/internal/backend"
	"github.com/getmentor/mentorship-portal/pkg/jwt"
	"github.com/getmentor/mentorship-portal/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// ViewerContextKey holds the *jwt.ViewerClaims of the request, when readable
	ViewerContextKey = "viewer"

	anonymousSubject = "anonymous"
)

// ViewerMiddleware forwards the browser's bearer token to the backend client.
// The token comes from the auth cookie or an Authorization header. It is never
// verified here: requests proceed without one and the backend answers 401.
func ViewerMiddleware(tokenCookie string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c, tokenCookie)
		if token == "" {
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(backend.WithToken(c.Request.Context(), token))

		claims, err := jwt.InspectToken(token)
		if err != nil {
			logger.Debug("Bearer token claims unreadable", zap.Error(err))
		} else {
			c.Set(ViewerContextKey, claims)
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context, tokenCookie string) string {
	if header := strings.TrimSpace(c.GetHeader("Authorization")); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(tokenCookie); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

// GetViewer returns the inspected token claims, or nil for anonymous requests
func GetViewer(c *gin.Context) *jwt.ViewerClaims {
	val, exists := c.Get(ViewerContextKey)
	if !exists {
		return nil
	}
	claims, _ := val.(*jwt.ViewerClaims)
	return claims
}

// viewerSubject partitions workspaces by signed-in user
func viewerSubject(c *gin.Context) string {
	if claims := GetViewer(c); claims != nil {
		return claims.UserKey()
	}
	return anonymousSubject
}
