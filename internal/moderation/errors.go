package moderation

import (
	"fmt"
	"strings"
)

// The four error kinds every failure inside the engine reduces to. Raw
// transport errors never cross the adapter boundary.

// FetchError reports a failed list fetch. The store keeps the last-known-good
// items when it sees one.
type FetchError struct {
	Entity string
	Tab    string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s/%s: %v", e.Entity, e.Tab, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// TransitionError reports a failed approve/reject call. The local item stays
// untouched.
type TransitionError struct {
	Entity string
	ItemID string
	Target string
	Err    error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition %s/%s to %s: %v", e.Entity, e.ItemID, e.Target, e.Err)
}

func (e *TransitionError) Unwrap() error { return e.Err }

// ValidationError reports missing or blank required fields. No network call
// was made; the dialog stays open with Missing highlighted.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// DuplicateSubmissionError reports a transition requested for an item already
// mid-transition. Callers ignore it; the first submission proceeds alone.
type DuplicateSubmissionError struct {
	Key string
}

func (e *DuplicateSubmissionError) Error() string {
	return fmt.Sprintf("transition already in flight for %s", e.Key)
}
