package handlers

import (
	"mime"
	"net/http"

	"github.com/getmentor/mentorship-portal/internal/views"
	"github.com/gin-gonic/gin"
)

type ResourceHandler struct{}

func NewResourceHandler() *ResourceHandler {
	return &ResourceHandler{}
}

// List handles GET /resources?q=&category=&type=
func (h *ResourceHandler) List(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	var filter views.ResourceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}

	ws.Resources.Enter(c.Request.Context())
	ws.Resources.SetFilter(filter)

	render(c, ws, "resources.html", "Resources", ws.Resources.Snapshot(), nil)
}

// Download handles GET /resources/:id/download and streams the payload as an attachment
func (h *ResourceHandler) Download(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	download, err := ws.Resources.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondFailure(c, err)
		return
	}
	defer download.Body.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": download.Filename})
	if disposition == "" {
		disposition = "attachment"
	}
	c.DataFromReader(http.StatusOK, download.ContentLength, download.ContentType, download.Body, map[string]string{
		"Content-Disposition": disposition,
	})
}
