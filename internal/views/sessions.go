package views

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/getmentor/mentorship-portal/internal/models"
	apperrors "github.com/getmentor/mentorship-portal/pkg/errors"
	"github.com/getmentor/mentorship-portal/pkg/logger"
	"github.com/getmentor/mentorship-portal/pkg/metrics"
	"go.uber.org/zap"
)

// SessionTab selects the status filter of the session list
type SessionTab string

const (
	TabPending  SessionTab = "pending"
	TabAccepted SessionTab = "accepted"
	TabHistory  SessionTab = "history"
)

var SessionTabs = []SessionTab{TabPending, TabAccepted, TabHistory}

func (t SessionTab) Valid() bool {
	return t == TabPending || t == TabAccepted || t == TabHistory
}

// SessionAction is a status change a participant can request
type SessionAction string

const (
	ActionAccept   SessionAction = "accept"
	ActionReject   SessionAction = "reject"
	ActionComplete SessionAction = "complete"
)

// TargetStatus returns the status the backend is asked to move the session to
func (a SessionAction) TargetStatus() (models.SessionStatus, bool) {
	switch a {
	case ActionAccept:
		return models.SessionAccepted, true
	case ActionReject:
		return models.SessionRejected, true
	case ActionComplete:
		return models.SessionCompleted, true
	default:
		return "", false
	}
}

const sessionsView = "sessions"

// SessionRow is a session plus the buttons the list offers for it
type SessionRow struct {
	models.Session
	CanAccept   bool `json:"canAccept"`
	CanReject   bool `json:"canReject"`
	CanJoin     bool `json:"canJoin"`
	CanComplete bool `json:"canComplete"`
}

type SessionListSnapshot struct {
	Tab     SessionTab   `json:"tab"`
	Tabs    []SessionTab `json:"tabs"`
	Loading bool         `json:"loading"`
	Error   string       `json:"error,omitempty"`
	Rows    []SessionRow `json:"rows"`
}

// SessionLifecycleView lists the viewer's sessions by status tab and drives
// their status changes. The backend owns every transition; after a change the
// active tab is re-read instead of patched locally.
type SessionLifecycleView struct {
	api        SessionAPI
	nav        *Navigator
	meetingURL string

	mu       sync.Mutex
	mounted  bool
	tab      SessionTab
	sessions []models.Session
	loading  bool
	errMsg   string
	tracker  requestTracker
}

func NewSessionLifecycleView(api SessionAPI, nav *Navigator, meetingURLTemplate string) *SessionLifecycleView {
	return &SessionLifecycleView{
		api:        api,
		nav:        nav,
		meetingURL: meetingURLTemplate,
		tab:        TabPending,
	}
}

// Enter shows the sessions page on tab ("" keeps the current tab). The list is
// fetched when the page is mounted and afterwards only when the tab changes.
func (v *SessionLifecycleView) Enter(ctx context.Context, tab SessionTab) error {
	if tab != "" && !tab.Valid() {
		return apperrors.InvalidInputError("tab", fmt.Sprintf("unknown session tab %q", tab))
	}
	arrived := v.nav.Navigate(PageSessions)

	v.mu.Lock()
	if tab == "" {
		tab = v.tab
	}
	if v.mounted && !arrived && tab == v.tab {
		v.mu.Unlock()
		return nil
	}
	v.mounted = true
	v.tab = tab
	fetchCtx, gen := v.beginLocked(ctx)
	v.mu.Unlock()

	v.fetch(fetchCtx, gen, tab)
	return nil
}

// SelectTab switches the status filter. Selecting the active tab is a no-op;
// any other tab triggers exactly one fetch.
func (v *SessionLifecycleView) SelectTab(ctx context.Context, tab SessionTab) error {
	if !tab.Valid() {
		return apperrors.InvalidInputError("tab", fmt.Sprintf("unknown session tab %q", tab))
	}

	v.mu.Lock()
	if v.mounted && tab == v.tab {
		v.mu.Unlock()
		return nil
	}
	v.mounted = true
	v.tab = tab
	fetchCtx, gen := v.beginLocked(ctx)
	v.mu.Unlock()

	v.fetch(fetchCtx, gen, tab)
	return nil
}

// Refresh re-reads the active tab
func (v *SessionLifecycleView) Refresh(ctx context.Context) {
	v.mu.Lock()
	v.mounted = true
	tab := v.tab
	fetchCtx, gen := v.beginLocked(ctx)
	v.mu.Unlock()

	v.fetch(fetchCtx, gen, tab)
}

// Act asks the backend to apply action to a session and then refetches the
// active tab. Nothing is retried and nothing is updated optimistically.
func (v *SessionLifecycleView) Act(ctx context.Context, sessionID string, action SessionAction) error {
	status, ok := action.TargetStatus()
	if !ok {
		return apperrors.InvalidInputError("action", fmt.Sprintf("unknown session action %q", action))
	}

	v.mu.Lock()
	if current, found := v.findLocked(sessionID); found && !current.Status.CanTransitionTo(status) {
		v.errMsg = fmt.Sprintf("A %s session cannot be marked %s", current.Status, status)
		v.mu.Unlock()
		metrics.SessionActions.WithLabelValues(string(action), "refused").Inc()
		return fmt.Errorf("session %s is %s: %w", sessionID, current.Status, apperrors.ErrConflict)
	}
	v.mu.Unlock()

	err := v.api.UpdateSessionStatus(ctx, sessionID, status)
	metrics.SessionActions.WithLabelValues(string(action), metrics.StatusLabel(err)).Inc()
	if err != nil {
		logger.Warn("Session status update failed",
			zap.String("session_id", sessionID),
			zap.String("action", string(action)),
			zap.Error(err))

		v.mu.Lock()
		v.errMsg = errorMessage(err, "Failed to update session")
		v.mu.Unlock()
		return err
	}

	v.Refresh(ctx)
	return nil
}

// JoinURL renders the external meeting link for a room. Only the presence of
// the room identifier is checked.
func (v *SessionLifecycleView) JoinURL(roomID string) (string, error) {
	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return "", apperrors.InvalidInputError("room", "is required")
	}
	return strings.ReplaceAll(v.meetingURL, "{room}", url.PathEscape(roomID)), nil
}

func (v *SessionLifecycleView) Tab() SessionTab {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tab
}

// Snapshot returns the render state. Rows are withheld while an error is shown.
func (v *SessionLifecycleView) Snapshot() SessionListSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := SessionListSnapshot{
		Tab:     v.tab,
		Tabs:    SessionTabs,
		Loading: v.loading,
		Error:   v.errMsg,
		Rows:    []SessionRow{},
	}
	if v.errMsg != "" || v.loading {
		return snap
	}

	for _, s := range v.sessions {
		snap.Rows = append(snap.Rows, newSessionRow(v.tab, s))
	}
	return snap
}

func newSessionRow(tab SessionTab, s models.Session) SessionRow {
	pendingOnPendingTab := tab == TabPending && s.Status == models.SessionPending
	accepted := s.Status == models.SessionAccepted
	return SessionRow{
		Session:     s,
		CanAccept:   pendingOnPendingTab,
		CanReject:   pendingOnPendingTab,
		CanJoin:     accepted,
		CanComplete: accepted,
	}
}

func (v *SessionLifecycleView) findLocked(sessionID string) (models.Session, bool) {
	for _, s := range v.sessions {
		if s.ID == sessionID {
			return s, true
		}
	}
	return models.Session{}, false
}

func (v *SessionLifecycleView) beginLocked(ctx context.Context) (context.Context, uint64) {
	v.loading = true
	v.errMsg = ""
	return v.tracker.next(ctx)
}

func (v *SessionLifecycleView) fetch(ctx context.Context, gen uint64, tab SessionTab) {
	sessions, err := v.api.ListSessions(ctx, string(tab))

	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.tracker.settle(gen) {
		recordSuperseded(sessionsView)
		return
	}
	recordFetch(sessionsView, err)

	v.loading = false
	if err != nil {
		v.sessions = nil
		v.errMsg = errorMessage(err, "Failed to load sessions")
		return
	}
	v.sessions = sessions
}
