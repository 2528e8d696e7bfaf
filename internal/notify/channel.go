// Package notify implements the console's short-lived notification slot.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Notification is one visible message.
type Notification struct {
	ID       uuid.UUID
	Message  string
	Severity Severity
	ShownAt  time.Time
}

// Channel holds at most one visible notification and auto-hides it after a
// fixed delay. Showing a new message replaces the current one and restarts
// the timer, so an older timer can never dismiss a newer message.
type Channel struct {
	ttl time.Duration

	mu      sync.Mutex
	current Notification
	visible bool
	timer   *time.Timer
}

const DefaultTTL = 5 * time.Second

func NewChannel(ttl time.Duration) *Channel {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Channel{ttl: ttl}
}

// Show replaces any visible notification and schedules auto-hide.
func (c *Channel) Show(message string, severity Severity) Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}

	n := Notification{
		ID:       uuid.New(),
		Message:  message,
		Severity: severity,
		ShownAt:  time.Now(),
	}
	c.current = n
	c.visible = true

	id := n.ID
	c.timer = time.AfterFunc(c.ttl, func() {
		c.hideIf(id)
	})
	return n
}

// Hide cancels the timer and clears visibility immediately.
func (c *Channel) Hide() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.visible = false
}

// hideIf clears visibility only if the given notification is still the one
// showing. A stopped timer can still race its Stop; the id check makes the
// late firing harmless.
func (c *Channel) hideIf(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.visible && c.current.ID == id {
		c.visible = false
	}
}

// Current returns the visible notification, if any.
func (c *Channel) Current() (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.visible {
		return Notification{}, false
	}
	return c.current, true
}
