package views

import (
	"context"
	"math"
	"sync"

	"github.com/getmentor/mentorship-portal/internal/models"
)

const progressView = "progress"

// CompletionRate is the rounded percentage of completed sessions, 0 when
// there are no sessions
func CompletionRate(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

type ProgressSnapshot struct {
	Loading        bool            `json:"loading"`
	Error          string          `json:"error,omitempty"`
	CompletionRate int             `json:"completionRate"`
	Progress       models.Progress `json:"progress"`
}

// ProgressView shows the aggregate progress payload as fetched
type ProgressView struct {
	api ProgressAPI
	nav *Navigator

	mu       sync.Mutex
	mounted  bool
	progress models.Progress
	loading  bool
	errMsg   string
	tracker  requestTracker
}

func NewProgressView(api ProgressAPI, nav *Navigator) *ProgressView {
	return &ProgressView{api: api, nav: nav}
}

func (v *ProgressView) Enter(ctx context.Context) {
	arrived := v.nav.Navigate(PageProgress)

	v.mu.Lock()
	if v.mounted && !arrived {
		v.mu.Unlock()
		return
	}
	v.mounted = true
	v.loading = true
	v.errMsg = ""
	fetchCtx, gen := v.tracker.next(ctx)
	v.mu.Unlock()

	progress, err := v.api.GetProgress(fetchCtx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.tracker.settle(gen) {
		recordSuperseded(progressView)
		return
	}
	recordFetch(progressView, err)

	v.loading = false
	if err != nil {
		v.progress = models.Progress{}
		v.errMsg = errorMessage(err, "Failed to load progress")
		return
	}
	v.progress = progress
}

func (v *ProgressView) Snapshot() ProgressSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	return ProgressSnapshot{
		Loading:        v.loading,
		Error:          v.errMsg,
		CompletionRate: CompletionRate(v.progress.CompletedSessions, v.progress.TotalSessions),
		Progress:       v.progress,
	}
}
