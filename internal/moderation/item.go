// Package moderation implements the generic moderation-queue engine: one
// store/controller/coordinator/pager stack parameterized by an entity adapter,
// instead of one copy per entity type.
package moderation

import (
	"time"

	"adminconsole/internal/domain"
)

// Item wraps one user-submitted request awaiting (or past) an administrative
// decision. Payload is opaque to the engine.
type Item[P any] struct {
	ID              string
	Owner           domain.Owner
	State           domain.State
	CreatedAt       time.Time
	Payload         P
	RejectionReason string
}

// Fields carries the extra inputs a transition needs (reason, transactionId).
type Fields map[string]string

// Tab is a named, independently loaded view over items.
//
// State is the lifecycle state the tab shows; empty for all-states tabs such
// as the TPIN history view. Paginated tabs are server-paginated; the pending
// tab never is.
type Tab struct {
	Name      string
	State     domain.State
	Paginated bool
	AllStates bool
}

// Pagination is server truth from the latest successful fetch. It is never
// recomputed from local mutations.
type Pagination struct {
	Page       int
	TotalPages int
	TotalCount int
}

// Page is one fetch result.
type Page[P any] struct {
	Items      []Item[P]
	Pagination *Pagination
}

// Status is a tab's load status.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
)

// QueueState is the renderable state of one tab.
type QueueState[P any] struct {
	Items        []Item[P]
	Status       Status
	ErrorMessage string
	Pagination   *Pagination
}
