package handlers

import (
	"github.com/gin-gonic/gin"
)

type ProgressHandler struct{}

func NewProgressHandler() *ProgressHandler {
	return &ProgressHandler{}
}

// Show handles GET /progress
func (h *ProgressHandler) Show(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	ws.Progress.Enter(c.Request.Context())
	render(c, ws, "progress.html", "Progress", ws.Progress.Snapshot(), nil)
}
