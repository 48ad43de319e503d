package handlers

import (
	"net/http"

	"github.com/getmentor/mentorship-portal/internal/views"
	"github.com/gin-gonic/gin"
)

type overviewActionURI struct {
	ID     string `uri:"id" binding:"required,max=100"`
	Action string `uri:"action" binding:"required,oneof=accept reject"`
}

type OverviewHandler struct{}

func NewOverviewHandler() *OverviewHandler {
	return &OverviewHandler{}
}

// Root handles GET /
func (h *OverviewHandler) Root(c *gin.Context) {
	c.Redirect(http.StatusFound, "/overview")
}

// Show handles GET /overview
func (h *OverviewHandler) Show(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	ws.Overview.Enter(c.Request.Context())
	render(c, ws, "overview.html", "Overview", ws.Overview.Snapshot(), nil)
}

// Act handles POST /overview/sessions/:id/:action from the pending panel
func (h *OverviewHandler) Act(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	var uri overviewActionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, err)
		return
	}

	err := ws.Overview.Act(c.Request.Context(), uri.ID, views.SessionAction(uri.Action))
	finish(c, err, "/overview", func() any { return ws.Overview.Snapshot() })
}
