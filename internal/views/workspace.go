package views

import (
	"context"

	"github.com/getmentor/mentorship-portal/internal/models"
)

// SessionAPI is the slice of the backend the session views use
type SessionAPI interface {
	ListSessions(ctx context.Context, filter string) ([]models.Session, error)
	UpdateSessionStatus(ctx context.Context, sessionID string, status models.SessionStatus) error
	SessionHistory(ctx context.Context) ([]models.Session, error)
}

type ProfileAPI interface {
	GetProfile(ctx context.Context) (models.Profile, error)
	UpdateProfile(ctx context.Context, profile models.Profile) (models.Profile, error)
	UpdatePassword(ctx context.Context, change models.PasswordChange) error
}

type MentorAPI interface {
	ListMentors(ctx context.Context) ([]models.Mentor, error)
	RequestConnection(ctx context.Context, mentorID string) error
}

type ProgressAPI interface {
	GetProgress(ctx context.Context) (models.Progress, error)
}

type ResourceAPI interface {
	ListResources(ctx context.Context) ([]models.Resource, error)
	DownloadResource(ctx context.Context, resourceID string) (models.Download, error)
}

// Backend is everything a workspace needs from the mentorship API
type Backend interface {
	SessionAPI
	ProfileAPI
	MentorAPI
	ProgressAPI
	ResourceAPI
}

// Options configure the views of a workspace
type Options struct {
	MeetingURLTemplate string
}

// Workspace bundles the navigator and every screen of one browser session.
// It is the transient client cache: dropping it loses nothing the backend
// does not own.
type Workspace struct {
	ID        string
	Nav       *Navigator
	Overview  *OverviewView
	Sessions  *SessionLifecycleView
	Settings  *ProfileSettingsView
	Mentors   *MentorDirectoryView
	Progress  *ProgressView
	Resources *ResourcesView
}

func NewWorkspace(id string, api Backend, opts Options) *Workspace {
	nav := NewNavigator()
	return &Workspace{
		ID:        id,
		Nav:       nav,
		Overview:  NewOverviewView(api, nav),
		Sessions:  NewSessionLifecycleView(api, nav, opts.MeetingURLTemplate),
		Settings:  NewProfileSettingsView(api, nav),
		Mentors:   NewMentorDirectoryView(api, nav),
		Progress:  NewProgressView(api, nav),
		Resources: NewResourcesView(api, nav),
	}
}
