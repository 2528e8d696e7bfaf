package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowReplacesCurrentNotification(t *testing.T) {
	ch := NewChannel(time.Minute)

	first := ch.Show("payment approved", SeveritySuccess)
	second := ch.Show("tpin rejected", SeverityInfo)

	n, visible := ch.Current()
	require.True(t, visible)
	assert.Equal(t, second.ID, n.ID)
	assert.Equal(t, "tpin rejected", n.Message)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestAutoHideAfterTTL(t *testing.T) {
	ch := NewChannel(20 * time.Millisecond)
	ch.Show("done", SeveritySuccess)

	_, visible := ch.Current()
	require.True(t, visible)

	assert.Eventually(t, func() bool {
		_, visible := ch.Current()
		return !visible
	}, time.Second, 5*time.Millisecond)
}

func TestShowRestartsTimer(t *testing.T) {
	ch := NewChannel(60 * time.Millisecond)

	ch.Show("first", SeveritySuccess)
	time.Sleep(40 * time.Millisecond)
	ch.Show("second", SeverityError)
	time.Sleep(40 * time.Millisecond)

	// 80ms after the first Show its timer would have fired; the second
	// message must still be up because Show restarted the countdown.
	n, visible := ch.Current()
	require.True(t, visible, "newer notification outlives the older timer")
	assert.Equal(t, "second", n.Message)

	assert.Eventually(t, func() bool {
		_, visible := ch.Current()
		return !visible
	}, time.Second, 5*time.Millisecond)
}

func TestHideClearsImmediately(t *testing.T) {
	ch := NewChannel(time.Minute)
	ch.Show("pending", SeverityInfo)
	ch.Hide()

	_, visible := ch.Current()
	assert.False(t, visible)
}

func TestZeroTTLFallsBackToDefault(t *testing.T) {
	ch := NewChannel(0)
	assert.Equal(t, DefaultTTL, ch.ttl)
}
