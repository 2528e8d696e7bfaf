package moderation

import (
	"context"
	"sync"
)

// Coordinator tracks the active tab, loads tab data on first entry, and
// computes badge counts. Switching back to an already-populated tab does not
// refetch; Refresh forces a reload of the active tab.
type Coordinator[P any] struct {
	store *Store[P]

	mu      sync.Mutex
	active  Tab
	summary map[string]int
}

func NewCoordinator[P any](store *Store[P]) *Coordinator[P] {
	return &Coordinator[P]{
		store:   store,
		summary: make(map[string]int),
	}
}

// Select makes tab the active one, loading it only if it has never been
// loaded.
func (c *Coordinator[P]) Select(ctx context.Context, tab Tab) error {
	c.mu.Lock()
	c.active = tab
	c.mu.Unlock()

	if c.store.Loaded(tab) {
		return nil
	}
	return c.store.Load(ctx, tab, 1)
}

// Refresh reloads the active tab unconditionally, keeping its current page.
func (c *Coordinator[P]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	tab := c.active
	c.mu.Unlock()

	page := 1
	if snap := c.store.Snapshot(tab); snap.Pagination != nil {
		page = snap.Pagination.Page
	}
	return c.store.Load(ctx, tab, page)
}

// Active returns the currently selected tab.
func (c *Coordinator[P]) Active() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// BadgeCount returns the count shown on a tab's badge. Loaded unpaginated
// tabs report their item count; loaded paginated tabs report the server total
// when present. Tabs never yet loaded fall back to a summary figure (e.g. an
// overview endpoint's pending count) or zero.
func (c *Coordinator[P]) BadgeCount(tab Tab) int {
	if c.store.Loaded(tab) {
		snap := c.store.Snapshot(tab)
		if tab.Paginated && snap.Pagination != nil {
			return snap.Pagination.TotalCount
		}
		return len(snap.Items)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary[tab.Name]
}

// SetSummaryCount records a server-provided summary figure used as the badge
// for a tab that has not been loaded yet.
func (c *Coordinator[P]) SetSummaryCount(tabName string, count int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summary[tabName] = count
}
