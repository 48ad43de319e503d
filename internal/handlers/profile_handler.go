package handlers

import (
	"net/http"

	"github.com/getmentor/mentorship-portal/internal/models"
	"github.com/getmentor/mentorship-portal/internal/views"
	"github.com/gin-gonic/gin"
)

type settingsQuery struct {
	Tab string `form:"tab" binding:"omitempty,oneof=basicDetails socialMedia loginAndSecurity"`
}

type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

// Show handles GET /settings?tab=
func (h *ProfileHandler) Show(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	var q settingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	if err := ws.Settings.Enter(c.Request.Context(), views.ProfileTab(q.Tab)); err != nil {
		respondFailure(c, err)
		return
	}

	render(c, ws, "settings.html", "Settings", ws.Settings.Snapshot(), ws.Settings.TakeNotice)
}

// SaveBasicDetails handles POST /settings/basic
func (h *ProfileHandler) SaveBasicDetails(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	var form models.BasicDetails
	if !h.bind(c, ws, views.TabBasicDetails, &form) || !h.loaded(c, ws, views.TabBasicDetails) {
		return
	}
	form.Expertise = splitTags(form.Expertise)
	form.Interests = splitTags(form.Interests)

	ws.Settings.ApplyBasicDetails(form)
	h.submit(c, ws, views.TabBasicDetails)
}

// SaveSocialLinks handles POST /settings/social
func (h *ProfileHandler) SaveSocialLinks(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	var links models.SocialLinks
	if !h.bind(c, ws, views.TabSocialMedia, &links) || !h.loaded(c, ws, views.TabSocialMedia) {
		return
	}

	ws.Settings.ApplySocialLinks(links)
	h.submit(c, ws, views.TabSocialMedia)
}

// ChangePassword handles POST /settings/password
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	var form models.PasswordForm
	if !h.bind(c, ws, views.TabLoginAndSecurity, &form) {
		return
	}

	ws.Settings.SetPasswordFields(form)
	h.submit(c, ws, views.TabLoginAndSecurity)
}

// bind selects the form's tab and validates the body. Browsers get the
// validation summary inline on the settings page.
func (h *ProfileHandler) bind(c *gin.Context, ws *views.Workspace, tab views.ProfileTab, form any) bool {
	_ = ws.Settings.SelectTab(tab) //nolint:errcheck

	if err := c.ShouldBind(form); err != nil {
		if wantsJSON(c) {
			badRequest(c, err)
			return false
		}
		attachError(c, err)
		ws.Settings.RejectInput(summarize(err))
		c.Redirect(http.StatusSeeOther, "/settings?tab="+string(tab))
		return false
	}
	return true
}

// loaded makes sure the profile record is present before a form is applied
// on top of it; a fresh workspace fetches it here
func (h *ProfileHandler) loaded(c *gin.Context, ws *views.Workspace, tab views.ProfileTab) bool {
	if err := ws.Settings.EnsureLoaded(c.Request.Context()); err != nil {
		finish(c, err, "/settings?tab="+string(tab), func() any { return ws.Settings.Snapshot() })
		return false
	}
	return true
}

func (h *ProfileHandler) submit(c *gin.Context, ws *views.Workspace, tab views.ProfileTab) {
	err := ws.Settings.Submit(c.Request.Context())
	finish(c, err, "/settings?tab="+string(tab), func() any { return ws.Settings.Snapshot() })
}
