package views

import "sync"

// Page identifies a top-level screen of the portal
type Page string

const (
	PageOverview  Page = "overview"
	PageSessions  Page = "sessions"
	PageSettings  Page = "settings"
	PageMentors   Page = "mentors"
	PageProgress  Page = "progress"
	PageResources Page = "resources"
)

// Navigator is the only state shared between views: the current page and the
// sidebar toggle. It is handed to every view explicitly.
type Navigator struct {
	mu          sync.RWMutex
	current     Page
	sidebarOpen bool
}

func NewNavigator() *Navigator {
	return &Navigator{
		current:     PageOverview,
		sidebarOpen: true,
	}
}

// Navigate makes page current and reports whether it was entered from
// another page, which remounts the page's view
func (n *Navigator) Navigate(page Page) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	arrived := n.current != page
	n.current = page
	return arrived
}

func (n *Navigator) Current() Page {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.current
}

func (n *Navigator) SidebarOpen() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.sidebarOpen
}

// ToggleSidebar flips the sidebar flag and returns the new value
func (n *Navigator) ToggleSidebar() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sidebarOpen = !n.sidebarOpen
	return n.sidebarOpen
}
