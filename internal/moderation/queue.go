package moderation

import (
	"context"

	"adminconsole/internal/domain"
	"adminconsole/internal/notify"
	"adminconsole/pkg/logger"
)

// Queue bundles the engine pieces for one entity type. Building a new
// moderation screen is this one call plus an adapter.
type Queue[P any] struct {
	Adapter     Adapter[P]
	Store       *Store[P]
	Controller  *Controller[P]
	Coordinator *Coordinator[P]
	Pager       *Pager[P]
}

func NewQueue[P any](adapter Adapter[P], notifier *notify.Channel, log logger.Logger) *Queue[P] {
	if log == nil {
		log = logger.NewNop()
	}
	store := NewStore(adapter, log)
	return &Queue[P]{
		Adapter:     adapter,
		Store:       store,
		Controller:  NewController(adapter, store, notifier, log),
		Coordinator: NewCoordinator(store),
		Pager:       NewPager(store),
	}
}

// Tab looks up one of the adapter's tabs by name.
func (q *Queue[P]) Tab(name string) (Tab, bool) {
	for _, t := range q.Adapter.Tabs() {
		if t.Name == name {
			return t, true
		}
	}
	return Tab{}, false
}

// Find looks up a loaded item on tab by its record id or by the owner's
// public user code.
func (q *Queue[P]) Find(tab Tab, key string) (Item[P], bool) {
	for _, item := range q.Store.Snapshot(tab).Items {
		if item.ID == key || (item.Owner.Code != "" && item.Owner.Code == key) {
			return item, true
		}
	}
	return Item[P]{}, false
}

// Approve transitions item to approved on the given tab.
func (q *Queue[P]) Approve(ctx context.Context, tab Tab, item Item[P], extra Fields) error {
	return q.Controller.Execute(ctx, tab, item, domain.StateApproved, extra)
}

// Reject transitions item to rejected with a reason.
func (q *Queue[P]) Reject(ctx context.Context, tab Tab, item Item[P], reason string) error {
	return q.Controller.Execute(ctx, tab, item, domain.StateRejected, Fields{"reason": reason})
}
