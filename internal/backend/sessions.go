package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/getmentor/mentorship-portal/internal/models"
)

// ListSessions returns the viewer's sessions matching filter, a session
// status or "history"
func (c *Client) ListSessions(ctx context.Context, filter string) ([]models.Session, error) {
	path := "/api/sessions?status=" + url.QueryEscape(filter)
	return fetchList[models.Session](ctx, c, "list_sessions", path, "sessions")
}

// UpdateSessionStatus asks the backend to move a session to status.
// The response body is ignored; callers refetch.
func (c *Client) UpdateSessionStatus(ctx context.Context, sessionID string, status models.SessionStatus) error {
	path := "/api/sessions/" + url.PathEscape(sessionID) + "/status"
	return c.call(ctx, "update_session_status", http.MethodPut, path,
		models.UpdateSessionStatusRequest{Status: status}, nil)
}

// SessionHistory returns the viewer's past sessions in any status
func (c *Client) SessionHistory(ctx context.Context) ([]models.Session, error) {
	return fetchList[models.Session](ctx, c, "session_history", "/api/sessions/history", "sessions")
}
