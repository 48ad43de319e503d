package handlers

import (
	"net/http"

	"github.com/getmentor/mentorship-portal/internal/views"
	"github.com/gin-gonic/gin"
)

type sessionsQuery struct {
	Tab string `form:"tab" binding:"omitempty,oneof=pending accepted history"`
}

type sessionActionURI struct {
	ID     string `uri:"id" binding:"required,max=100"`
	Action string `uri:"action" binding:"required,oneof=accept reject complete"`
}

type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// List handles GET /sessions?tab=
func (h *SessionHandler) List(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	var q sessionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	if err := ws.Sessions.Enter(c.Request.Context(), views.SessionTab(q.Tab)); err != nil {
		respondFailure(c, err)
		return
	}

	render(c, ws, "sessions.html", "Sessions", ws.Sessions.Snapshot(), nil)
}

// Refresh handles POST /sessions/refresh
func (h *SessionHandler) Refresh(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	ws.Sessions.Refresh(c.Request.Context())
	finish(c, nil, "/sessions", func() any { return ws.Sessions.Snapshot() })
}

// Act handles POST /sessions/:id/:action
func (h *SessionHandler) Act(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	var uri sessionActionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, err)
		return
	}

	err := ws.Sessions.Act(c.Request.Context(), uri.ID, views.SessionAction(uri.Action))
	finish(c, err, "/sessions?tab="+string(ws.Sessions.Tab()), func() any { return ws.Sessions.Snapshot() })
}

// Join handles GET /sessions/join/:room by sending the browser to the meeting
func (h *SessionHandler) Join(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	link, err := ws.Sessions.JoinURL(c.Param("room"))
	if err != nil {
		respondFailure(c, err)
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"url": link})
		return
	}
	c.Redirect(http.StatusFound, link)
}
