package views

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/getmentor/mentorship-portal/internal/models"
	apperrors "github.com/getmentor/mentorship-portal/pkg/errors"
	"github.com/getmentor/mentorship-portal/pkg/logger"
	"github.com/getmentor/mentorship-portal/pkg/metrics"
	"go.uber.org/zap"
)

const mentorsView = "mentors"

type MentorDirectorySnapshot struct {
	Loading bool            `json:"loading"`
	Error   string          `json:"error,omitempty"`
	Search  string          `json:"search"`
	Facet   string          `json:"facet"`
	Facets  []string        `json:"facets"`
	Mentors []models.Mentor `json:"mentors"`
}

// MentorDirectoryView loads the mentor list once and filters it locally.
// A connection request patches the one affected entry instead of refetching.
type MentorDirectoryView struct {
	api MentorAPI
	nav *Navigator

	mu      sync.Mutex
	mounted bool
	mentors []models.Mentor
	search  string
	facet   string
	loading bool
	errMsg  string
	notice  *Notice
	tracker requestTracker
}

func NewMentorDirectoryView(api MentorAPI, nav *Navigator) *MentorDirectoryView {
	return &MentorDirectoryView{api: api, nav: nav}
}

func (v *MentorDirectoryView) Enter(ctx context.Context) {
	arrived := v.nav.Navigate(PageMentors)

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

	mentors, err := v.api.ListMentors(fetchCtx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.tracker.settle(gen) {
		recordSuperseded(mentorsView)
		return
	}
	recordFetch(mentorsView, err)

	v.loading = false
	if err != nil {
		v.mentors = nil
		v.errMsg = errorMessage(err, "Failed to load mentors")
		return
	}
	v.mentors = mentors
}

func (v *MentorDirectoryView) SetSearch(search string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.search = strings.TrimSpace(search)
}

// SetFacet selects an expertise tag; "" or "all" clears the facet
func (v *MentorDirectoryView) SetFacet(facet string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if facet == "all" {
		facet = ""
	}
	v.facet = facet
}

// Visible applies both filters to the loaded list
func (v *MentorDirectoryView) Visible() []models.Mentor {
	v.mu.Lock()
	defer v.mu.Unlock()
	return filterMentors(v.mentors, v.search, v.facet)
}

func filterMentors(mentors []models.Mentor, search, facet string) []models.Mentor {
	needle := strings.ToLower(search)
	out := make([]models.Mentor, 0, len(mentors))
	for _, m := range mentors {
		if needle != "" && !mentorMatches(m, needle) {
			continue
		}
		if facet != "" && !slices.Contains(m.Expertise, facet) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func mentorMatches(m models.Mentor, needle string) bool {
	if strings.Contains(strings.ToLower(m.Name), needle) {
		return true
	}
	for _, tag := range m.Expertise {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Facets returns the sorted distinct expertise tags of the loaded list
func (v *MentorDirectoryView) Facets() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return mentorFacets(v.mentors)
}

func mentorFacets(mentors []models.Mentor) []string {
	seen := make(map[string]struct{})
	facets := []string{}
	for _, m := range mentors {
		for _, tag := range m.Expertise {
			if _, ok := seen[tag]; ok || tag == "" {
				continue
			}
			seen[tag] = struct{}{}
			facets = append(facets, tag)
		}
	}
	sort.Strings(facets)
	return facets
}

// Connect requests a connection with a mentor and marks only that entry pending
func (v *MentorDirectoryView) Connect(ctx context.Context, mentorID string) error {
	v.mu.Lock()
	idx := v.indexLocked(mentorID)
	if idx < 0 {
		v.mu.Unlock()
		return apperrors.NotFoundError("mentor " + mentorID)
	}
	if v.mentors[idx].IsPending() {
		v.mu.Unlock()
		return nil
	}
	v.mu.Unlock()

	err := v.api.RequestConnection(ctx, mentorID)
	metrics.ConnectionRequests.WithLabelValues(metrics.StatusLabel(err)).Inc()

	v.mu.Lock()
	defer v.mu.Unlock()

	if err != nil {
		logger.Warn("Connection request failed", zap.String("mentor_id", mentorID), zap.Error(err))
		v.notice = &Notice{Level: NoticeError, Text: errorMessage(err, "Failed to send connection request")}
		return err
	}

	// the list may have been reloaded while the request was in flight
	if idx = v.indexLocked(mentorID); idx >= 0 {
		patched := slices.Clone(v.mentors)
		patched[idx].ConnectionStatus = models.ConnectionPending
		v.mentors = patched
	}
	v.notice = &Notice{Level: NoticeSuccess, Text: "Connection request sent"}
	return nil
}

func (v *MentorDirectoryView) indexLocked(mentorID string) int {
	for i, m := range v.mentors {
		if m.ID == mentorID {
			return i
		}
	}
	return -1
}

func (v *MentorDirectoryView) TakeNotice() *Notice {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := v.notice
	v.notice = nil
	return n
}

// Mentors returns the loaded list unfiltered
func (v *MentorDirectoryView) Mentors() []models.Mentor {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.mentors)
}

func (v *MentorDirectoryView) Snapshot() MentorDirectorySnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := MentorDirectorySnapshot{
		Loading: v.loading,
		Error:   v.errMsg,
		Search:  v.search,
		Facet:   v.facet,
		Facets:  mentorFacets(v.mentors),
		Mentors: []models.Mentor{},
	}
	if v.errMsg == "" && !v.loading {
		snap.Mentors = filterMentors(v.mentors, v.search, v.facet)
	}
	return snap
}
