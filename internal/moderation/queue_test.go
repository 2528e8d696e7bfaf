package moderation

import (
	"context"
	"testing"
	"time"

	"adminconsole/internal/domain"
	"adminconsole/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueTabLookup(t *testing.T) {
	q := NewQueue[widget](&stubAdapter{}, notify.NewChannel(time.Minute), nil)

	tab, ok := q.Tab("approved")
	require.True(t, ok)
	assert.True(t, tab.Paginated)

	_, ok = q.Tab("nope")
	assert.False(t, ok)
}

func TestQueueFindByIDOrOwnerCode(t *testing.T) {
	adapter := &stubAdapter{
		fetchFn: func(ctx context.Context, tab Tab, page int) (Page[widget], error) {
			return Page[widget]{Items: []Item[widget]{
				{ID: "rec-1", State: domain.StatePending, Owner: domain.Owner{ID: "u1", Code: "ID001"}},
				{ID: "rec-2", State: domain.StatePending, Owner: domain.Owner{ID: "u2", Code: "ID002"}},
			}}, nil
		},
	}
	q := NewQueue[widget](adapter, notify.NewChannel(time.Minute), nil)
	tab := pendingTab()
	require.NoError(t, q.Store.Load(context.Background(), tab, 1))

	item, ok := q.Find(tab, "rec-2")
	require.True(t, ok)
	assert.Equal(t, "rec-2", item.ID)

	item, ok = q.Find(tab, "ID001")
	require.True(t, ok, "the public user code works where the record id is unknown")
	assert.Equal(t, "rec-1", item.ID)

	_, ok = q.Find(tab, "ID999")
	assert.False(t, ok)
}
