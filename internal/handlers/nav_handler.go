package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type NavHandler struct{}

func NewNavHandler() *NavHandler {
	return &NavHandler{}
}

// ToggleSidebar handles POST /nav/toggle
func (h *NavHandler) ToggleSidebar(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	open := ws.Nav.ToggleSidebar()
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"sidebarOpen": open})
		return
	}
	c.Redirect(http.StatusSeeOther, backTo(c, "/"+string(ws.Nav.Current())))
}
