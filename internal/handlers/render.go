package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/getmentor/mentorship-portal/internal/middleware"
	"github.com/getmentor/mentorship-portal/internal/views"
	"github.com/gin-gonic/gin"
)

// page is the data every HTML template receives
type page struct {
	Title       string
	Current     views.Page
	SidebarOpen bool
	ViewerName  string
	Notice      *views.Notice
	View        any
}

func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

// workspace returns the request's workspace or answers 500 and aborts
func workspace(c *gin.Context) (*views.Workspace, bool) {
	ws, err := middleware.GetWorkspace(c)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		c.Abort()
		return nil, false
	}
	return ws, true
}

// render writes a view snapshot as JSON or as the named page. The one-shot
// notice is only consumed by HTML renders.
func render(c *gin.Context, ws *views.Workspace, tmpl, title string, snapshot any, takeNotice func() *views.Notice) {
	if wantsJSON(c) {
		c.JSON(http.StatusOK, snapshot)
		return
	}

	data := page{
		Title:       title,
		Current:     ws.Nav.Current(),
		SidebarOpen: ws.Nav.SidebarOpen(),
		View:        snapshot,
	}
	if viewer := middleware.GetViewer(c); viewer != nil && !viewer.Expired(time.Now()) {
		data.ViewerName = viewer.Name
	}
	if takeNotice != nil {
		data.Notice = takeNotice()
	}
	c.HTML(http.StatusOK, tmpl, data)
}

// finish completes a mutation: JSON clients get the fresh snapshot or a mapped
// error, browsers are redirected (303) to the page that shows the outcome
func finish(c *gin.Context, err error, redirectTo string, snapshot func() any) {
	if wantsJSON(c) {
		if err != nil {
			respondFailure(c, err)
			return
		}
		c.JSON(http.StatusOK, snapshot())
		return
	}

	attachError(c, err)
	c.Redirect(http.StatusSeeOther, redirectTo)
}

// badRequest answers a malformed request in the negotiated format
func badRequest(c *gin.Context, err error) {
	if wantsJSON(c) {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}
	attachError(c, err)
	c.HTML(http.StatusBadRequest, "error.html", gin.H{
		"Title":   "Bad request",
		"Status":  http.StatusBadRequest,
		"Message": summarize(err),
	})
}

// backTo returns the same-origin path of the Referer, or fallback
func backTo(c *gin.Context, fallback string) string {
	ref, err := url.Parse(c.GetHeader("Referer"))
	if err != nil || ref.Path == "" || !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return fallback
	}
	if ref.Host != "" && ref.Host != c.Request.Host {
		return fallback
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
