package handlers

import (
	"github.com/gin-gonic/gin"
)

type mentorQuery struct {
	Search string `form:"q" binding:"max=200"`
	Facet  string `form:"facet" binding:"max=100"`
}

type MentorHandler struct{}

func NewMentorHandler() *MentorHandler {
	return &MentorHandler{}
}

// List handles GET /mentors?q=&facet=
func (h *MentorHandler) List(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	var q mentorQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	ws.Mentors.Enter(c.Request.Context())
	ws.Mentors.SetSearch(q.Search)
	ws.Mentors.SetFacet(q.Facet)

	render(c, ws, "mentors.html", "Find a mentor", ws.Mentors.Snapshot(), ws.Mentors.TakeNotice)
}

// Connect handles POST /mentors/:id/connect
func (h *MentorHandler) Connect(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	err := ws.Mentors.Connect(c.Request.Context(), c.Param("id"))
	finish(c, err, backTo(c, "/mentors"), func() any { return ws.Mentors.Snapshot() })
}
