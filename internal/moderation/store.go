package moderation

import (
	"context"
	"sync"

	"adminconsole/pkg/logger"
)

// Store holds, per tab, the current items, load status and pagination cursor.
// It is the single source of truth the view renders from.
//
// Load is safe to call repeatedly and concurrently for the same tab: each call
// takes a fresh request token and a response is applied only while its token
// is still the newest, so an older, slower response can never clobber a newer
// one (last-started, last-applied).
type Store[P any] struct {
	adapter Adapter[P]
	log     logger.Logger

	mu   sync.Mutex
	tabs map[string]*tabState[P]
}

type tabState[P any] struct {
	queue  QueueState[P]
	token  uint64
	loaded bool
}

func NewStore[P any](adapter Adapter[P], log logger.Logger) *Store[P] {
	if log == nil {
		log = logger.NewNop()
	}
	return &Store[P]{
		adapter: adapter,
		log:     log,
		tabs:    make(map[string]*tabState[P]),
	}
}

func (s *Store[P]) tab(name string) *tabState[P] {
	ts, ok := s.tabs[name]
	if !ok {
		ts = &tabState[P]{queue: QueueState[P]{Status: StatusIdle}}
		s.tabs[name] = ts
	}
	return ts
}

// Load fetches one page for tab and replaces that tab's items and pagination.
// On failure the prior items stay visible and the status flips to error.
func (s *Store[P]) Load(ctx context.Context, tab Tab, page int) error {
	s.mu.Lock()
	ts := s.tab(tab.Name)
	ts.token++
	token := ts.token
	ts.queue.Status = StatusLoading
	ts.queue.ErrorMessage = ""
	s.mu.Unlock()

	fetched, err := s.adapter.FetchPage(ctx, tab, page)

	s.mu.Lock()
	defer s.mu.Unlock()

	if ts.token != token {
		// A newer load started while this one was in flight; its result wins.
		s.log.Debug("discarding stale load response", map[string]interface{}{
			"entity": s.adapter.Entity(),
			"tab":    tab.Name,
		})
		return nil
	}

	if err != nil {
		ts.queue.Status = StatusError
		ts.queue.ErrorMessage = err.Error()
		s.log.Warn("load failed, keeping previous items", map[string]interface{}{
			"entity": s.adapter.Entity(),
			"tab":    tab.Name,
			"error":  err.Error(),
		})
		return err
	}

	ts.queue.Items = dedupe(fetched.Items, s.adapter.IdentityKey)
	ts.queue.Pagination = fetched.Pagination
	ts.queue.Status = StatusIdle
	ts.loaded = true
	return nil
}

// dedupe drops later duplicates so an item id appears at most once per tab.
func dedupe[P any](items []Item[P], key func(Item[P]) string) []Item[P] {
	seen := make(map[string]struct{}, len(items))
	out := items[:0:0]
	for _, it := range items {
		k := key(it)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}

// PatchItem applies fn to the single item matching id. No-op if absent.
func (s *Store[P]) PatchItem(tab Tab, id string, fn func(*Item[P])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := s.tab(tab.Name)
	for i := range ts.queue.Items {
		if ts.queue.Items[i].ID == id {
			fn(&ts.queue.Items[i])
			return
		}
	}
}

// RemoveItem deletes the item matching id. No-op if absent.
func (s *Store[P]) RemoveItem(tab Tab, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := s.tab(tab.Name)
	for i := range ts.queue.Items {
		if ts.queue.Items[i].ID == id {
			ts.queue.Items = append(ts.queue.Items[:i], ts.queue.Items[i+1:]...)
			return
		}
	}
}

// Snapshot returns a copy of the tab's renderable state.
func (s *Store[P]) Snapshot(tab Tab) QueueState[P] {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := s.tab(tab.Name)
	out := ts.queue
	out.Items = append([]Item[P](nil), ts.queue.Items...)
	if ts.queue.Pagination != nil {
		p := *ts.queue.Pagination
		out.Pagination = &p
	}
	return out
}

// CountFor returns the loaded item count for a tab.
func (s *Store[P]) CountFor(tab Tab) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tab(tab.Name).queue.Items)
}

// Loaded reports whether the tab has ever completed a successful load.
func (s *Store[P]) Loaded(tab Tab) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab(tab.Name).loaded
}
