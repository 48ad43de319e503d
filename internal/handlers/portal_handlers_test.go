package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/getmentor/mentorship-portal/internal/models"
	apperrors "github.com/getmentor/mentorship-portal/pkg/errors"
	"github.com/getmentor/mentorship-portal/pkg/jwt"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func pendingSession(id string) models.Session {
	return models.Session{
		ID:          id,
		Title:       "Career chat",
		Status:      models.SessionPending,
		ScheduledAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestRoot_RedirectsToOverview(t *testing.T) {
	p := newPortal(t, new(MockBackend))

	w := p.html(http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/overview", w.Header().Get("Location"))
}

func TestWorkspace_CookieIssuedAndReused(t *testing.T) {
	api := new(MockBackend)
	api.On("GetProgress", mock.Anything).Return(models.Progress{CompletedSessions: 3, TotalSessions: 4}, nil)
	p := newPortal(t, api)

	w := p.json(http.MethodGet, "/progress", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, p.cookie)
	first := p.cookie.Value

	w = p.json(http.MethodGet, "/progress", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, first, p.cookie.Value)

	// same page, same workspace: mounted once
	api.AssertNumberOfCalls(t, "GetProgress", 1)
}

func TestProgress_ReportsCompletionRate(t *testing.T) {
	api := new(MockBackend)
	api.On("GetProgress", mock.Anything).Return(models.Progress{CompletedSessions: 3, TotalSessions: 4}, nil)
	p := newPortal(t, api)

	w := p.json(http.MethodGet, "/progress", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w.Body)
	assert.EqualValues(t, 75, body["completionRate"])
}

func TestSessions_FetchesOncePerTabChange(t *testing.T) {
	api := new(MockBackend)
	api.On("ListSessions", mock.Anything, "pending").Return([]models.Session{pendingSession("s1")}, nil)
	api.On("ListSessions", mock.Anything, "accepted").Return([]models.Session{}, nil)
	p := newPortal(t, api)

	w := p.json(http.MethodGet, "/sessions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w.Body)
	assert.Equal(t, "pending", body["tab"])
	rows := body["rows"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, true, rows[0].(map[string]any)["canAccept"])

	p.json(http.MethodGet, "/sessions?tab=accepted", nil)
	p.json(http.MethodGet, "/sessions?tab=accepted", nil)

	api.AssertNumberOfCalls(t, "ListSessions", 2)
}

func TestSessions_UnknownTabIsBadRequest(t *testing.T) {
	p := newPortal(t, new(MockBackend))

	w := p.json(http.MethodGet, "/sessions?tab=archived", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", decode(t, w.Body)["error"])
}

func TestSessions_ActRedirectsBrowserToActiveTab(t *testing.T) {
	api := new(MockBackend)
	api.On("ListSessions", mock.Anything, "pending").Return([]models.Session{pendingSession("s1")}, nil)
	api.On("UpdateSessionStatus", mock.Anything, "s1", models.SessionAccepted).Return(nil)
	p := newPortal(t, api)

	p.html(http.MethodGet, "/sessions", nil)
	w := p.html(http.MethodPost, "/sessions/s1/accept", url.Values{})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/sessions?tab=pending", w.Header().Get("Location"))
	api.AssertCalled(t, "UpdateSessionStatus", mock.Anything, "s1", models.SessionAccepted)
	api.AssertNumberOfCalls(t, "ListSessions", 2)
}

func TestSessions_BackwardTransitionIsConflict(t *testing.T) {
	accepted := pendingSession("s2")
	accepted.Status = models.SessionAccepted
	api := new(MockBackend)
	api.On("ListSessions", mock.Anything, "accepted").Return([]models.Session{accepted}, nil)
	p := newPortal(t, api)

	p.json(http.MethodGet, "/sessions?tab=accepted", nil)
	w := p.json(http.MethodPost, "/sessions/s2/reject", url.Values{})

	assert.Equal(t, http.StatusConflict, w.Code)
	api.AssertNotCalled(t, "UpdateSessionStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestSessions_ActFailureMapsStatus(t *testing.T) {
	api := new(MockBackend)
	api.On("ListSessions", mock.Anything, "pending").Return([]models.Session{pendingSession("s1")}, nil)
	api.On("UpdateSessionStatus", mock.Anything, "s1", models.SessionRejected).Return(apperrors.ErrUnavailable)
	p := newPortal(t, api)

	p.json(http.MethodGet, "/sessions", nil)
	w := p.json(http.MethodPost, "/sessions/s1/reject", url.Values{})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Mentorship service is unavailable", decode(t, w.Body)["error"])
}

func TestSessions_Join(t *testing.T) {
	p := newPortal(t, new(MockBackend))

	w := p.json(http.MethodGet, "/sessions/join/room%201", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://meet.example.com/room%201", decode(t, w.Body)["url"])

	w = p.html(http.MethodGet, "/sessions/join/abc", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://meet.example.com/abc", w.Header().Get("Location"))
}

func TestOverview_EmptyStates(t *testing.T) {
	api := new(MockBackend)
	api.On("ListSessions", mock.Anything, "pending").Return([]models.Session{}, nil)
	api.On("SessionHistory", mock.Anything).Return([]models.Session{}, nil)
	p := newPortal(t, api)

	w := p.html(http.MethodGet, "/overview", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No pending sessions")
	assert.Contains(t, w.Body.String(), "No sessions in history")
}

func TestOverview_AcceptFromPendingList(t *testing.T) {
	api := new(MockBackend)
	api.On("ListSessions", mock.Anything, "pending").Return([]models.Session{pendingSession("s1")}, nil)
	api.On("SessionHistory", mock.Anything).Return([]models.Session{}, nil)
	api.On("UpdateSessionStatus", mock.Anything, "s1", models.SessionAccepted).Return(nil)
	p := newPortal(t, api)

	p.html(http.MethodGet, "/overview", nil)
	w := p.html(http.MethodPost, "/overview/sessions/s1/accept", url.Values{})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/overview", w.Header().Get("Location"))
	api.AssertCalled(t, "UpdateSessionStatus", mock.Anything, "s1", models.SessionAccepted)
}

func TestOverview_CompleteIsNotAnOverviewAction(t *testing.T) {
	p := newPortal(t, new(MockBackend))

	w := p.json(http.MethodPost, "/overview/sessions/s1/complete", url.Values{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMentors_LoadFailureRendersInline(t *testing.T) {
	api := new(MockBackend)
	api.On("ListMentors", mock.Anything).Return(nil, apperrors.ErrUnavailable)
	p := newPortal(t, api)

	w := p.json(http.MethodGet, "/mentors", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Failed to load mentors", decode(t, w.Body)["error"])
}

func TestMentors_FilterAndConnect(t *testing.T) {
	api := new(MockBackend)
	api.On("ListMentors", mock.Anything).Return([]models.Mentor{
		{ID: "m1", Name: "Alice", Expertise: []string{"Go"}, ConnectionStatus: models.ConnectionNone},
		{ID: "m2", Name: "Bob", Expertise: []string{"Design"}, ConnectionStatus: models.ConnectionNone},
	}, nil)
	api.On("RequestConnection", mock.Anything, "m1").Return(nil)
	p := newPortal(t, api)

	w := p.json(http.MethodGet, "/mentors?q=ali", nil)
	require.Equal(t, http.StatusOK, w.Code)
	mentors := decode(t, w.Body)["mentors"].([]any)
	require.Len(t, mentors, 1)
	assert.Equal(t, "m1", mentors[0].(map[string]any)["id"])

	w = p.json(http.MethodPost, "/mentors/m1/connect", url.Values{})
	require.Equal(t, http.StatusOK, w.Code)
	mentors = decode(t, w.Body)["mentors"].([]any)
	require.Len(t, mentors, 1)
	assert.Equal(t, "pending", mentors[0].(map[string]any)["connectionStatus"])

	api.AssertNumberOfCalls(t, "ListMentors", 1)
}

func TestMentors_ConnectUnknownIsNotFound(t *testing.T) {
	api := new(MockBackend)
	api.On("ListMentors", mock.Anything).Return([]models.Mentor{}, nil)
	p := newPortal(t, api)

	p.json(http.MethodGet, "/mentors", nil)
	w := p.json(http.MethodPost, "/mentors/ghost/connect", url.Values{})

	assert.Equal(t, http.StatusNotFound, w.Code)
	api.AssertNotCalled(t, "RequestConnection", mock.Anything, mock.Anything)
}

func TestSettings_PasswordMismatchShowsNotice(t *testing.T) {
	api := new(MockBackend)
	api.On("GetProfile", mock.Anything).Return(models.Profile{Name: "Ada"}, nil)
	p := newPortal(t, api)

	p.html(http.MethodGet, "/settings", nil)
	w := p.html(http.MethodPost, "/settings/password", url.Values{
		"currentPassword": {"old"},
		"newPassword":     {"secret-1"},
		"confirmPassword": {"secret-2"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/settings?tab=loginAndSecurity", w.Header().Get("Location"))

	w = p.html(http.MethodGet, "/settings?tab=loginAndSecurity", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "New password and confirmation do not match")

	// the notice is shown once
	w = p.html(http.MethodGet, "/settings?tab=loginAndSecurity", nil)
	assert.NotContains(t, w.Body.String(), "New password and confirmation do not match")

	api.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
}

func TestSettings_SaveBasicDetails(t *testing.T) {
	api := new(MockBackend)
	api.On("GetProfile", mock.Anything).Return(models.Profile{ID: "u1", Name: "Ada"}, nil)
	api.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(p models.Profile) bool {
		return p.Name == "Ada Lovelace" && assert.ObjectsAreEqual([]string{"go", "rust"}, p.Expertise)
	})).Return(models.Profile{ID: "u1", Name: "Ada Lovelace", Expertise: []string{"go", "rust"}}, nil)
	p := newPortal(t, api)

	p.json(http.MethodGet, "/settings", nil)
	w := p.json(http.MethodPost, "/settings/basic", url.Values{
		"name":      {"Ada Lovelace"},
		"expertise": {"go, rust"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w.Body)
	assert.Equal(t, "basicDetails", body["tab"])
	assert.Equal(t, "Ada Lovelace", body["profile"].(map[string]any)["name"])
}

func TestSettings_ValidationFailure(t *testing.T) {
	api := new(MockBackend)
	api.On("GetProfile", mock.Anything).Return(models.Profile{Name: "Ada"}, nil)
	p := newPortal(t, api)

	p.json(http.MethodGet, "/settings", nil)

	w := p.json(http.MethodPost, "/settings/basic", url.Values{"email": {"nope"}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", decode(t, w.Body)["error"])

	w = p.html(http.MethodPost, "/settings/social", url.Values{"website": {"not a url"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/settings?tab=socialMedia", w.Header().Get("Location"))

	api.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
}

func TestResources_DownloadAsAttachment(t *testing.T) {
	api := new(MockBackend)
	api.On("ListResources", mock.Anything).Return([]models.Resource{
		{ID: "r1", Title: "Guide.pdf", Category: "Career", Type: models.ResourceDocument},
	}, nil)
	api.On("DownloadResource", mock.Anything, "r1").Return(models.Download{
		ContentType:   "application/pdf",
		ContentLength: 8,
		Body:          io.NopCloser(strings.NewReader("%PDF-1.7")),
	}, nil)
	p := newPortal(t, api)

	p.json(http.MethodGet, "/resources", nil)
	w := p.html(http.MethodGet, "/resources/r1/download", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Guide.pdf")
	assert.Equal(t, "%PDF-1.7", w.Body.String())
}

func TestResources_DownloadUnlistedIsNotFound(t *testing.T) {
	api := new(MockBackend)
	api.On("ListResources", mock.Anything).Return([]models.Resource{}, nil)
	p := newPortal(t, api)

	p.json(http.MethodGet, "/resources", nil)
	w := p.json(http.MethodGet, "/resources/r9/download", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	api.AssertNotCalled(t, "DownloadResource", mock.Anything, mock.Anything)
}

func TestResources_FilterByCategory(t *testing.T) {
	api := new(MockBackend)
	api.On("ListResources", mock.Anything).Return([]models.Resource{
		{ID: "r1", Title: "Resume tips", Category: "Career", Type: models.ResourceDocument},
		{ID: "r2", Title: "Go basics", Category: "Engineering", Type: models.ResourceVideo},
	}, nil)
	p := newPortal(t, api)

	w := p.json(http.MethodGet, "/resources?category=Engineering", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resources := decode(t, w.Body)["resources"].([]any)
	require.Len(t, resources, 1)
	assert.Equal(t, "r2", resources[0].(map[string]any)["id"])
}

func TestNav_ToggleSidebar(t *testing.T) {
	p := newPortal(t, new(MockBackend))

	w := p.json(http.MethodPost, "/nav/toggle", url.Values{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w.Body)["sidebarOpen"])

	w = p.html(http.MethodPost, "/nav/toggle", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/overview", w.Header().Get("Location"))

	w = p.json(http.MethodPost, "/nav/toggle", url.Values{})
	assert.Equal(t, false, decode(t, w.Body)["sidebarOpen"])
}

func TestSettings_SaveOnFreshWorkspaceKeepsServerRecord(t *testing.T) {
	api := new(MockBackend)
	api.On("GetProfile", mock.Anything).Return(models.Profile{
		ID:        "u1",
		Name:      "Ada",
		Email:     "ada@example.com",
		Bio:       "Mathematician",
		Expertise: []string{"math"},
	}, nil).Once()
	api.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(p models.Profile) bool {
		return p.Name == "Ada" && p.Bio == "Mathematician" && p.SocialLinks.GitHub == "ada"
	})).Return(models.Profile{ID: "u1", Name: "Ada", Bio: "Mathematician", SocialLinks: models.SocialLinks{GitHub: "ada"}}, nil).Once()
	p := newPortal(t, api)

	// no prior GET /settings: the workspace is brand new
	w := p.json(http.MethodPost, "/settings/social", url.Values{"github": {"ada"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Mathematician", decode(t, w.Body)["profile"].(map[string]any)["bio"])
	api.AssertExpectations(t)
}

func TestSettings_SaveRefusedWhenProfileCannotLoad(t *testing.T) {
	api := new(MockBackend)
	api.On("GetProfile", mock.Anything).Return(models.Profile{}, apperrors.ErrUnavailable)
	p := newPortal(t, api)

	w := p.json(http.MethodPost, "/settings/basic", url.Values{"name": {"Ada"}})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = p.html(http.MethodPost, "/settings/social", url.Values{"github": {"ada"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/settings?tab=socialMedia", w.Header().Get("Location"))

	api.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
}

func viewerToken(t *testing.T, name string, expiresAt time.Time) string {
	t.Helper()
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, jwt.ViewerClaims{
		Name: name,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "user-" + name,
			ExpiresAt: gojwt.NewNumericDate(expiresAt),
		},
	}).SignedString([]byte("backend-only"))
	require.NoError(t, err)
	return token
}

func TestLayout_ViewerNameHiddenOnceTokenExpires(t *testing.T) {
	api := new(MockBackend)
	api.On("GetProgress", mock.Anything).Return(models.Progress{CompletedSessions: 1, TotalSessions: 2}, nil)

	p := newPortal(t, api)
	p.bearer = viewerToken(t, "Grace", time.Now().Add(time.Hour))
	w := p.html(http.MethodGet, "/progress", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<span class="viewer">Grace</span>`)

	p = newPortal(t, api)
	p.bearer = viewerToken(t, "Grace", time.Now().Add(-time.Hour))
	w = p.html(http.MethodGet, "/progress", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `class="viewer"`)
}
