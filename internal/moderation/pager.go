package moderation

import "context"

// Pager drives server-side pagination for terminal-state tabs. Totals come
// verbatim from the latest successful fetch and are never recomputed locally.
type Pager[P any] struct {
	store *Store[P]
}

func NewPager[P any](store *Store[P]) *Pager[P] {
	return &Pager[P]{store: store}
}

// GoToPage loads the requested page. Out-of-range requests are a no-op.
func (p *Pager[P]) GoToPage(ctx context.Context, tab Tab, page int) error {
	if page < 1 {
		return nil
	}
	if snap := p.store.Snapshot(tab); snap.Pagination != nil && page > snap.Pagination.TotalPages {
		return nil
	}
	return p.store.Load(ctx, tab, page)
}

// Current returns the pagination cursor for a tab, or zero values before the
// first successful fetch.
func (p *Pager[P]) Current(tab Tab) Pagination {
	if snap := p.store.Snapshot(tab); snap.Pagination != nil {
		return *snap.Pagination
	}
	return Pagination{}
}
