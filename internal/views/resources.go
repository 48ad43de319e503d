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

const resourcesView = "resources"

// ResourceFilter narrows the resource list. Empty or "all" disables a facet.
type ResourceFilter struct {
	Search   string `json:"search" form:"q" binding:"max=200"`
	Category string `json:"category" form:"category" binding:"max=100"`
	Type     string `json:"type" form:"type" binding:"max=50"`
}

func (f ResourceFilter) normalize() ResourceFilter {
	f.Search = strings.TrimSpace(f.Search)
	if f.Category == "all" {
		f.Category = ""
	}
	if f.Type == "all" {
		f.Type = ""
	}
	return f
}

func (f ResourceFilter) matches(r models.Resource) bool {
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(r.Title), needle) ||
		strings.Contains(strings.ToLower(r.Description), needle)
}

type ResourcesSnapshot struct {
	Loading    bool              `json:"loading"`
	Error      string            `json:"error,omitempty"`
	Filter     ResourceFilter    `json:"filter"`
	Categories []string          `json:"categories"`
	Types      []string          `json:"types"`
	Resources  []models.Resource `json:"resources"`
}

// ResourcesView lists learning resources with local filtering and proxies downloads
type ResourcesView struct {
	api ResourceAPI
	nav *Navigator

	mu        sync.Mutex
	mounted   bool
	resources []models.Resource
	filter    ResourceFilter
	loading   bool
	errMsg    string
	tracker   requestTracker
}

func NewResourcesView(api ResourceAPI, nav *Navigator) *ResourcesView {
	return &ResourcesView{api: api, nav: nav}
}

func (v *ResourcesView) Enter(ctx context.Context) {
	arrived := v.nav.Navigate(PageResources)

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

	resources, err := v.api.ListResources(fetchCtx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.tracker.settle(gen) {
		recordSuperseded(resourcesView)
		return
	}
	recordFetch(resourcesView, err)

	v.loading = false
	if err != nil {
		v.resources = nil
		v.errMsg = errorMessage(err, "Failed to load resources")
		return
	}
	v.resources = resources
}

func (v *ResourcesView) SetFilter(filter ResourceFilter) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter = filter.normalize()
}

func (v *ResourcesView) Visible() []models.Resource {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visibleLocked()
}

func (v *ResourcesView) visibleLocked() []models.Resource {
	out := make([]models.Resource, 0, len(v.resources))
	for _, r := range v.resources {
		if v.filter.matches(r) {
			out = append(out, r)
		}
	}
	return out
}

func (v *ResourcesView) Categories() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return distinct(v.resources, func(r models.Resource) string { return r.Category })
}

func (v *ResourcesView) Types() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return distinct(v.resources, func(r models.Resource) string { return r.Type })
}

func distinct(resources []models.Resource, key func(models.Resource) string) []string {
	values := []string{}
	for _, r := range resources {
		if k := key(r); k != "" && !slices.Contains(values, k) {
			values = append(values, k)
		}
	}
	sort.Strings(values)
	return values
}

// Download opens a listed resource's payload, suggesting its title as the
// file name. The caller closes Body.
func (v *ResourcesView) Download(ctx context.Context, resourceID string) (models.Download, error) {
	v.mu.Lock()
	var title string
	found := false
	for _, r := range v.resources {
		if r.ID == resourceID {
			title, found = r.Title, true
			break
		}
	}
	v.mu.Unlock()

	if !found {
		metrics.ResourceDownloads.WithLabelValues("not_found").Inc()
		return models.Download{}, apperrors.NotFoundError("resource " + resourceID)
	}

	download, err := v.api.DownloadResource(ctx, resourceID)
	metrics.ResourceDownloads.WithLabelValues(metrics.StatusLabel(err)).Inc()
	if err != nil {
		logger.Warn("Resource download failed", zap.String("resource_id", resourceID), zap.Error(err))
		return models.Download{}, err
	}

	download.Filename = title
	if download.Filename == "" {
		download.Filename = resourceID
	}
	return download, nil
}

func (v *ResourcesView) Snapshot() ResourcesSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := ResourcesSnapshot{
		Loading:    v.loading,
		Error:      v.errMsg,
		Filter:     v.filter,
		Categories: distinct(v.resources, func(r models.Resource) string { return r.Category }),
		Types:      distinct(v.resources, func(r models.Resource) string { return r.Type }),
		Resources:  []models.Resource{},
	}
	if v.errMsg == "" && !v.loading {
		snap.Resources = v.visibleLocked()
	}
	return snap
}
