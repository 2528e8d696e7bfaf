package moderation

import (
	"context"
	"errors"
	"testing"
	"time"

	"adminconsole/internal/domain"
	"adminconsole/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockAdapter struct {
	mock.Mock
}

func (m *MockAdapter) Entity() string { return "payment" }

func (m *MockAdapter) Tabs() []Tab {
	return []Tab{{Name: "pending", State: domain.StatePending}}
}

func (m *MockAdapter) FetchPage(ctx context.Context, tab Tab, page int) (Page[widget], error) {
	args := m.Called(ctx, tab, page)
	return args.Get(0).(Page[widget]), args.Error(1)
}

func (m *MockAdapter) RequiredFields(target domain.State) []string {
	args := m.Called(target)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockAdapter) Transition(ctx context.Context, item Item[widget], target domain.State, extra Fields) (string, error) {
	args := m.Called(ctx, item, target, extra)
	return args.String(0), args.Error(1)
}

func (m *MockAdapter) IdentityKey(item Item[widget]) string { return item.ID }

func newControllerFixture(t *testing.T, adapter *MockAdapter, loaded []Item[widget]) (*Controller[widget], *Store[widget], *notify.Channel, Tab) {
	t.Helper()
	tab := pendingTab()
	store := NewStore[widget](adapter, nil)
	if loaded != nil {
		adapter.On("FetchPage", mock.Anything, tab, 1).Return(Page[widget]{Items: loaded}, nil).Once()
		require.NoError(t, store.Load(context.Background(), tab, 1))
	}
	notifier := notify.NewChannel(time.Minute)
	return NewController[widget](adapter, store, notifier, nil), store, notifier, tab
}

func TestExecuteApprovesAndRemovesFromPendingTab(t *testing.T) {
	adapter := new(MockAdapter)
	loaded := items("a", "b", "c")
	ctrl, store, notifier, tab := newControllerFixture(t, adapter, loaded)

	item := loaded[1]
	adapter.On("RequiredFields", domain.StateApproved).Return(nil)
	adapter.On("Transition", mock.Anything, item, domain.StateApproved, Fields{}).Return("Payment approved", nil).Once()

	require.NoError(t, ctrl.Execute(context.Background(), tab, item, domain.StateApproved, Fields{}))

	snap := store.Snapshot(tab)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "a", snap.Items[0].ID)
	assert.Equal(t, "c", snap.Items[1].ID)

	n, visible := notifier.Current()
	require.True(t, visible)
	assert.Equal(t, notify.SeveritySuccess, n.Severity)
	assert.Equal(t, "Payment approved", n.Message)
	adapter.AssertExpectations(t)
}

func TestExecuteValidatesBeforeNetwork(t *testing.T) {
	adapter := new(MockAdapter)
	ctrl, _, _, tab := newControllerFixture(t, adapter, nil)

	adapter.On("RequiredFields", domain.StateApproved).Return([]string{"transactionId"})

	err := ctrl.Execute(context.Background(), tab, Item[widget]{ID: "w1"}, domain.StateApproved, Fields{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"transactionId"}, ve.Missing)

	// Blank-after-trim counts as missing too.
	err = ctrl.Execute(context.Background(), tab, Item[widget]{ID: "w1"}, domain.StateApproved, Fields{"transactionId": "   "})
	require.ErrorAs(t, err, &ve)

	adapter.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecuteRejectsConcurrentDuplicate(t *testing.T) {
	adapter := new(MockAdapter)
	loaded := items("a")
	ctrl, _, _, tab := newControllerFixture(t, adapter, loaded)

	entered := make(chan struct{})
	release := make(chan struct{})
	adapter.On("RequiredFields", domain.StateApproved).Return(nil)
	adapter.On("Transition", mock.Anything, loaded[0], domain.StateApproved, Fields{}).
		Run(func(args mock.Arguments) {
			close(entered)
			<-release
		}).
		Return("ok", nil)

	done := make(chan error, 1)
	go func() {
		done <- ctrl.Execute(context.Background(), tab, loaded[0], domain.StateApproved, Fields{})
	}()
	<-entered

	assert.True(t, ctrl.Processing("a"))
	err := ctrl.Execute(context.Background(), tab, loaded[0], domain.StateApproved, Fields{})
	var dup *DuplicateSubmissionError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "a", dup.Key)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, ctrl.Processing("a"))
	adapter.AssertNumberOfCalls(t, "Transition", 1)
}

func TestExecuteRejectionPatchesAllStatesTab(t *testing.T) {
	adapter := new(MockAdapter)
	tab := Tab{Name: "history", AllStates: true}
	store := NewStore[widget](adapter, nil)
	loaded := items("t1")
	adapter.On("FetchPage", mock.Anything, tab, 1).Return(Page[widget]{Items: loaded}, nil).Once()
	require.NoError(t, store.Load(context.Background(), tab, 1))
	notifier := notify.NewChannel(time.Minute)
	ctrl := NewController[widget](adapter, store, notifier, nil)

	extra := Fields{"reason": "duplicate payment"}
	adapter.On("RequiredFields", domain.StateRejected).Return([]string{"reason"})
	adapter.On("Transition", mock.Anything, loaded[0], domain.StateRejected, extra).Return("", nil).Once()

	require.NoError(t, ctrl.Execute(context.Background(), tab, loaded[0], domain.StateRejected, extra))

	snap := store.Snapshot(tab)
	require.Len(t, snap.Items, 1, "all-states tab keeps the item")
	assert.Equal(t, domain.StateRejected, snap.Items[0].State)
	assert.Equal(t, "duplicate payment", snap.Items[0].RejectionReason)

	n, visible := notifier.Current()
	require.True(t, visible)
	assert.Equal(t, notify.SeverityInfo, n.Severity)
	assert.Equal(t, "Payment rejected successfully", n.Message, "templated default when the server sends none")
}

func TestExecuteFailureLeavesItemAndNotifiesError(t *testing.T) {
	adapter := new(MockAdapter)
	loaded := items("a", "b")
	ctrl, store, notifier, tab := newControllerFixture(t, adapter, loaded)

	adapter.On("RequiredFields", domain.StateRejected).Return([]string{"reason"})
	adapter.On("Transition", mock.Anything, loaded[0], domain.StateRejected, Fields{"reason": "fraud"}).
		Return("", &TransitionError{Entity: "payment", ItemID: "a", Target: "rejected", Err: errors.New("503")}).Once()

	err := ctrl.Execute(context.Background(), tab, loaded[0], domain.StateRejected, Fields{"reason": "fraud"})
	var te *TransitionError
	require.ErrorAs(t, err, &te)

	snap := store.Snapshot(tab)
	assert.Len(t, snap.Items, 2, "failed transition leaves the list untouched")

	n, visible := notifier.Current()
	require.True(t, visible)
	assert.Equal(t, notify.SeverityError, n.Severity)

	assert.False(t, ctrl.Processing("a"), "guard released after failure")
}

func TestExecuteSupportsAccountStateMachine(t *testing.T) {
	adapter := new(MockAdapter)
	tab := Tab{Name: "all", AllStates: true}
	store := NewStore[widget](adapter, nil)
	user := Item[widget]{ID: "u1", State: domain.StateActive}
	adapter.On("FetchPage", mock.Anything, tab, 1).Return(Page[widget]{Items: []Item[widget]{user}}, nil).Once()
	require.NoError(t, store.Load(context.Background(), tab, 1))
	notifier := notify.NewChannel(time.Minute)
	ctrl := NewController[widget](adapter, store, notifier, nil)

	extra := Fields{"reason": "chargeback abuse"}
	adapter.On("RequiredFields", domain.StateBlocked).Return([]string{"reason"})
	adapter.On("Transition", mock.Anything, user, domain.StateBlocked, extra).Return("Account deactivated", nil).Once()

	require.NoError(t, ctrl.Execute(context.Background(), tab, user, domain.StateBlocked, extra))

	snap := store.Snapshot(tab)
	assert.Equal(t, domain.StateBlocked, snap.Items[0].State)

	n, _ := notifier.Current()
	assert.Equal(t, notify.SeverityInfo, n.Severity)
}
