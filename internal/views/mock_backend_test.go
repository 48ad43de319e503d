package views

import (
	"context"

	"github.com/getmentor/mentorship-portal/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockBackend implements Backend for testing
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
	args := m.Called(ctx, sessionID, status)
	return args.Error(0)
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
	args := m.Called(ctx, change)
	return args.Error(0)
}

func (m *MockBackend) ListMentors(ctx context.Context) ([]models.Mentor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Mentor), args.Error(1)
}

func (m *MockBackend) RequestConnection(ctx context.Context, mentorID string) error {
	args := m.Called(ctx, mentorID)
	return args.Error(0)
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
