package moderation

import (
	"context"

	"adminconsole/internal/domain"
)

// Adapter is the per-entity-type contract the engine is parameterized over.
// Implementations wrap the remote admin API and nothing else; they hold no
// queue state.
type Adapter[P any] interface {
	// Entity names the entity type ("payment", "tpin", ...) for logging and
	// notification templates.
	Entity() string

	// Tabs lists the views this entity exposes, pending first.
	Tabs() []Tab

	// FetchPage loads one page of items for a tab. Unpaginated tabs ignore
	// page; paginated tabs treat page < 1 as 1. Network and envelope failures
	// come back as *FetchError.
	FetchPage(ctx context.Context, tab Tab, page int) (Page[P], error)

	// RequiredFields names the extra fields a transition to target must carry.
	RequiredFields(target domain.State) []string

	// Transition applies one state change and returns the server's message.
	// Failures come back as *TransitionError.
	Transition(ctx context.Context, item Item[P], target domain.State, extra Fields) (string, error)

	// IdentityKey returns the stable key used for duplicate-submission
	// guarding and list diffing. Unique within the entity type.
	IdentityKey(item Item[P]) string
}
