package middleware

import (
	"errors"
	"net/http"

	"github.com/getmentor/mentorship-portal/internal/views"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// WorkspaceContextKey holds the *views.Workspace of the request
	WorkspaceContextKey = "workspace"

	// WorkspaceIDContextKey holds the workspace cookie value
	WorkspaceIDContextKey = "workspace_id"
)

var (
	ErrWorkspaceNotFound = errors.New("workspace not found in context")
	ErrInvalidWorkspace  = errors.New("invalid workspace type")
)

// WorkspaceStore hands out the per-browser workspace
type WorkspaceStore interface {
	GetOrCreate(workspaceID, subject string) *views.Workspace
}

// CookieOptions describe the workspace cookie
type CookieOptions struct {
	Name       string
	Domain     string
	Secure     bool
	MaxAgeSecs int
}

// WorkspaceMiddleware attaches the browser's workspace to the request,
// issuing a new workspace cookie when it is missing or malformed. Must run
// after ViewerMiddleware.
func WorkspaceMiddleware(store WorkspaceStore, cookie CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cookie.Name)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}

		// refresh on every request so the cookie lives as long as the workspace
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookie.Name, id, cookie.MaxAgeSecs, "/", cookie.Domain, cookie.Secure, true)

		c.Set(WorkspaceIDContextKey, id)
		c.Set(WorkspaceContextKey, store.GetOrCreate(id, viewerSubject(c)))
		c.Next()
	}
}

// GetWorkspace extracts the workspace from context
func GetWorkspace(c *gin.Context) (*views.Workspace, error) {
	val, exists := c.Get(WorkspaceContextKey)
	if !exists {
		return nil, ErrWorkspaceNotFound
	}

	ws, ok := val.(*views.Workspace)
	if !ok {
		return nil, ErrInvalidWorkspace
	}
	return ws, nil
}
