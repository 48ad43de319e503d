package views

import (
	"context"
	"fmt"
	"sync"

	"github.com/getmentor/mentorship-portal/internal/models"
	apperrors "github.com/getmentor/mentorship-portal/pkg/errors"
	"github.com/getmentor/mentorship-portal/pkg/logger"
	"github.com/getmentor/mentorship-portal/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const overviewView = "overview"

type OverviewSnapshot struct {
	Loading bool            `json:"loading"`
	Error   string          `json:"error,omitempty"`
	Pending PendingSnapshot `json:"pending"`
	History HistorySnapshot `json:"history"`
}

// OverviewView is the dashboard hosting the pending and history sub-views.
// Sub-views emit actions here; this view performs them and refetches both lists.
type OverviewView struct {
	api SessionAPI
	nav *Navigator

	mu      sync.Mutex
	mounted bool
	pending []models.Session
	history []models.Session
	loading bool
	errMsg  string
	tracker requestTracker
}

func NewOverviewView(api SessionAPI, nav *Navigator) *OverviewView {
	return &OverviewView{api: api, nav: nav}
}

// Enter loads both lists when the dashboard is mounted
func (v *OverviewView) Enter(ctx context.Context) {
	arrived := v.nav.Navigate(PageOverview)

	v.mu.Lock()
	if v.mounted && !arrived {
		v.mu.Unlock()
		return
	}
	v.mounted = true
	fetchCtx, gen := v.beginLocked(ctx)
	v.mu.Unlock()

	v.fetch(fetchCtx, gen)
}

// Pending builds the pending sub-view over the current list
func (v *OverviewView) Pending() *PendingSessionsView {
	v.mu.Lock()
	defer v.mu.Unlock()
	return NewPendingSessionsView(v.pending, v.perform)
}

func (v *OverviewView) History() *SessionHistoryView {
	v.mu.Lock()
	defer v.mu.Unlock()
	return NewSessionHistoryView(v.history)
}

// Act routes a dashboard button press through the pending sub-view
func (v *OverviewView) Act(ctx context.Context, sessionID string, action SessionAction) error {
	pending := v.Pending()
	switch action {
	case ActionAccept:
		return pending.Accept(ctx, sessionID)
	case ActionReject:
		return pending.Reject(ctx, sessionID)
	default:
		return apperrors.InvalidInputError("action", fmt.Sprintf("%q is not available on the dashboard", action))
	}
}

func (v *OverviewView) Snapshot() OverviewSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := OverviewSnapshot{
		Loading: v.loading,
		Error:   v.errMsg,
	}
	if v.errMsg == "" && !v.loading {
		snap.Pending = NewPendingSessionsView(v.pending, nil).Snapshot()
		snap.History = NewSessionHistoryView(v.history).Snapshot()
	}
	return snap
}

// perform is the action handler given to the pending sub-view
func (v *OverviewView) perform(ctx context.Context, sessionID string, action SessionAction) error {
	status, ok := action.TargetStatus()
	if !ok {
		return apperrors.InvalidInputError("action", fmt.Sprintf("unknown session action %q", action))
	}

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

	v.mu.Lock()
	fetchCtx, gen := v.beginLocked(ctx)
	v.mu.Unlock()

	v.fetch(fetchCtx, gen)
	return nil
}

func (v *OverviewView) beginLocked(ctx context.Context) (context.Context, uint64) {
	v.loading = true
	v.errMsg = ""
	return v.tracker.next(ctx)
}

func (v *OverviewView) fetch(ctx context.Context, gen uint64) {
	var pending, history []models.Session

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pending, err = v.api.ListSessions(gctx, string(TabPending))
		return err
	})
	g.Go(func() error {
		var err error
		history, err = v.api.SessionHistory(gctx)
		return err
	})
	err := g.Wait()

	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.tracker.settle(gen) {
		recordSuperseded(overviewView)
		return
	}
	recordFetch(overviewView, err)

	v.loading = false
	if err != nil {
		v.pending, v.history = nil, nil
		v.errMsg = errorMessage(err, "Failed to load your sessions")
		return
	}
	v.pending, v.history = pending, history
}
