package cache

import (
	"sync"
	"time"

	"github.com/getmentor/mentorship-portal/internal/views"
	"github.com/getmentor/mentorship-portal/pkg/logger"
	"github.com/getmentor/mentorship-portal/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	workspaceCacheName   = "workspaces"
	workspaceCleanupTick = time.Minute
)

// WorkspaceFactory builds a fresh workspace for a browser
type WorkspaceFactory func(id string) *views.Workspace

// WorkspaceCache keeps one workspace per browser and viewer in memory.
// Entries expire after ttl without a request; every hit extends the lease.
type WorkspaceCache struct {
	cache   *gocache.Cache
	factory WorkspaceFactory
	ttl     time.Duration
	mu      sync.Mutex
}

// NewWorkspaceCache creates a new workspace cache
func NewWorkspaceCache(ttl time.Duration, factory WorkspaceFactory) *WorkspaceCache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	c := gocache.New(ttl, workspaceCleanupTick)
	wc := &WorkspaceCache{
		cache:   c,
		factory: factory,
		ttl:     ttl,
	}
	c.OnEvicted(func(key string, _ any) {
		logger.Debug("Workspace evicted", zap.String("key", key))
		metrics.CacheSize.WithLabelValues(workspaceCacheName).Set(float64(c.ItemCount()))
	})

	return wc
}

// Key partitions workspaces by browser and by the signed-in user, so a new
// sign-in on the same browser starts from an empty workspace
func Key(workspaceID, subject string) string {
	return workspaceID + ":" + subject
}

// GetOrCreate returns the workspace stored under Key(workspaceID, subject),
// building it when absent or expired
func (wc *WorkspaceCache) GetOrCreate(workspaceID, subject string) *views.Workspace {
	key := Key(workspaceID, subject)

	wc.mu.Lock()
	defer wc.mu.Unlock()

	if data, found := wc.cache.Get(key); found {
		if ws, ok := data.(*views.Workspace); ok {
			metrics.CacheHits.WithLabelValues(workspaceCacheName).Inc()
			wc.cache.Set(key, ws, wc.ttl)
			return ws
		}
		logger.Error("Invalid workspace cache data type", zap.String("key", key))
		wc.cache.Delete(key)
	}

	metrics.CacheMisses.WithLabelValues(workspaceCacheName).Inc()

	ws := wc.factory(workspaceID)
	wc.cache.Set(key, ws, wc.ttl)
	metrics.CacheSize.WithLabelValues(workspaceCacheName).Set(float64(wc.cache.ItemCount()))

	logger.Debug("Workspace created", zap.String("workspace_id", workspaceID))
	return ws
}

// Count returns the number of live workspaces
func (wc *WorkspaceCache) Count() int {
	return wc.cache.ItemCount()
}

// IsReady is always true; the store needs no warm-up
func (wc *WorkspaceCache) IsReady() bool {
	return wc.cache != nil
}
