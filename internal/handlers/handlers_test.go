package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/getmentor/mentorship-portal/internal/cache"
	"github.com/getmentor/mentorship-portal/internal/handlers"
	"github.com/getmentor/mentorship-portal/internal/middleware"
	"github.com/getmentor/mentorship-portal/internal/models"
	"github.com/getmentor/mentorship-portal/internal/views"
	"github.com/getmentor/mentorship-portal/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const workspaceCookie = "portal_ws"

// MockBackend implements views.Backend for testing
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) ListSessions(ctx context.Context, filter string) ([]models.Session, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Session), args.Error(1)
}

func (m *MockBackend) UpdateSessionStatus(ctx context.Context, sessionID string, status models.SessionStatus) error {
	return m.Called(ctx, sessionID, status).Error(0)
}

func (m *MockBackend) SessionHistory(ctx context.Context) ([]models.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Session), args.Error(1)
}

func (m *MockBackend) GetProfile(ctx context.Context) (models.Profile, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Profile), args.Error(1)
}

func (m *MockBackend) UpdateProfile(ctx context.Context, profile models.Profile) (models.Profile, error) {
	args := m.Called(ctx, profile)
	return args.Get(0).(models.Profile), args.Error(1)
}

func (m *MockBackend) UpdatePassword(ctx context.Context, change models.PasswordChange) error {
	return m.Called(ctx, change).Error(0)
}

func (m *MockBackend) ListMentors(ctx context.Context) ([]models.Mentor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Mentor), args.Error(1)
}

func (m *MockBackend) RequestConnection(ctx context.Context, mentorID string) error {
	return m.Called(ctx, mentorID).Error(0)
}

func (m *MockBackend) GetProgress(ctx context.Context) (models.Progress, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Progress), args.Error(1)
}

func (m *MockBackend) ListResources(ctx context.Context) ([]models.Resource, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Resource), args.Error(1)
}

func (m *MockBackend) DownloadResource(ctx context.Context, resourceID string) (models.Download, error) {
	args := m.Called(ctx, resourceID)
	return args.Get(0).(models.Download), args.Error(1)
}

// portal wires the page routes the way the server does, around a mocked backend
type portal struct {
	router *gin.Engine
	cookie *http.Cookie
	bearer string
}

func newPortal(t *testing.T, api views.Backend) *portal {
	t.Helper()

	tmpl, err := web.Templates()
	require.NoError(t, err)

	store := cache.NewWorkspaceCache(time.Minute, func(id string) *views.Workspace {
		return views.NewWorkspace(id, api, views.Options{MeetingURLTemplate: "https://meet.example.com/{room}"})
	})

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(middleware.ViewerMiddleware("auth_token"))
	router.Use(middleware.WorkspaceMiddleware(store, middleware.CookieOptions{Name: workspaceCookie, MaxAgeSecs: 60}))

	overview := handlers.NewOverviewHandler()
	sessions := handlers.NewSessionHandler()
	profile := handlers.NewProfileHandler()
	mentors := handlers.NewMentorHandler()
	progress := handlers.NewProgressHandler()
	resources := handlers.NewResourceHandler()
	nav := handlers.NewNavHandler()

	router.GET("/", overview.Root)
	router.GET("/overview", overview.Show)
	router.POST("/overview/sessions/:id/:action", overview.Act)
	router.GET("/sessions", sessions.List)
	router.POST("/sessions/refresh", sessions.Refresh)
	router.POST("/sessions/:id/:action", sessions.Act)
	router.GET("/sessions/join/:room", sessions.Join)
	router.GET("/settings", profile.Show)
	router.POST("/settings/basic", profile.SaveBasicDetails)
	router.POST("/settings/social", profile.SaveSocialLinks)
	router.POST("/settings/password", profile.ChangePassword)
	router.GET("/mentors", mentors.List)
	router.POST("/mentors/:id/connect", mentors.Connect)
	router.GET("/progress", progress.Show)
	router.GET("/resources", resources.List)
	router.GET("/resources/:id/download", resources.Download)
	router.POST("/nav/toggle", nav.ToggleSidebar)

	return &portal{router: router}
}

// do sends a request within one browser workspace
func (p *portal) do(method, target string, body url.Values, accept string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(body.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, http.NoBody)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if p.cookie != nil {
		req.AddCookie(p.cookie)
	}
	if p.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+p.bearer)
	}

	w := httptest.NewRecorder()
	p.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == workspaceCookie {
			p.cookie = c
		}
	}
	return w
}

func (p *portal) html(method, target string, body url.Values) *httptest.ResponseRecorder {
	return p.do(method, target, body, "text/html")
}

func (p *portal) json(method, target string, body url.Values) *httptest.ResponseRecorder {
	return p.do(method, target, body, "application/json")
}
