package moderation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"adminconsole/internal/domain"
	"adminconsole/internal/notify"
	"adminconsole/pkg/logger"
	"adminconsole/pkg/validator"
)

// Controller orchestrates a single approve/reject/status transition: required
// field validation, duplicate-submission guarding, the adapter call, and the
// store/notification follow-up.
//
// Controllers for different entity types hold independent processing sets.
type Controller[P any] struct {
	adapter  Adapter[P]
	store    *Store[P]
	notifier *notify.Channel
	log      logger.Logger

	mu         sync.Mutex
	processing map[string]struct{}
}

func NewController[P any](adapter Adapter[P], store *Store[P], notifier *notify.Channel, log logger.Logger) *Controller[P] {
	if log == nil {
		log = logger.NewNop()
	}
	return &Controller[P]{
		adapter:    adapter,
		store:      store,
		notifier:   notifier,
		log:        log,
		processing: make(map[string]struct{}),
	}
}

// Execute runs one transition of item to target.
//
// Validation failures and duplicate submissions return before any network
// call. On success the item is removed from a single-state tab or patched in
// place on an all-states tab, and a notification announces the outcome. On
// failure the item is left untouched so the operator can retry without
// re-entering anything.
func (c *Controller[P]) Execute(ctx context.Context, tab Tab, item Item[P], target domain.State, extra Fields) error {
	if missing := c.missingFields(target, extra); len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}

	key := c.adapter.IdentityKey(item)

	c.mu.Lock()
	if _, busy := c.processing[key]; busy {
		c.mu.Unlock()
		return &DuplicateSubmissionError{Key: key}
	}
	c.processing[key] = struct{}{}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.processing, key)
		c.mu.Unlock()
	}()

	message, err := c.adapter.Transition(ctx, item, target, extra)
	if err != nil {
		c.log.Error("transition failed", map[string]interface{}{
			"entity": c.adapter.Entity(),
			"item":   item.ID,
			"target": string(target),
			"error":  err.Error(),
		})
		c.notify(fmt.Sprintf("Failed to %s %s: %v", verbFor(target), c.adapter.Entity(), err), notify.SeverityError)
		return err
	}

	if tab.AllStates {
		c.store.PatchItem(tab, item.ID, func(it *Item[P]) {
			it.State = target
			if target == domain.StateRejected {
				it.RejectionReason = strings.TrimSpace(extra["reason"])
			}
		})
	} else {
		c.store.RemoveItem(tab, item.ID)
	}

	if message == "" {
		message = fmt.Sprintf("%s %s successfully", capitalize(c.adapter.Entity()), pastVerbFor(target))
	}
	c.notify(message, severityFor(target))

	c.log.Info("transition applied", map[string]interface{}{
		"entity": c.adapter.Entity(),
		"item":   item.ID,
		"target": string(target),
	})
	return nil
}

// Processing reports whether a transition is currently in flight for key.
// The view uses it to disable action buttons.
func (c *Controller[P]) Processing(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, busy := c.processing[key]
	return busy
}

func (c *Controller[P]) missingFields(target domain.State, extra Fields) []string {
	var missing []string
	for _, name := range c.adapter.RequiredFields(target) {
		if !validator.NotBlank(extra[name]) {
			missing = append(missing, name)
		}
	}
	return missing
}

func (c *Controller[P]) notify(message string, severity notify.Severity) {
	if c.notifier != nil {
		c.notifier.Show(message, severity)
	}
}

// Rejections and blocks succeed too; they just carry a distinct, non-failure
// tone so the operator can tell the outcomes apart at a glance.
func severityFor(target domain.State) notify.Severity {
	switch target {
	case domain.StateRejected, domain.StateBlocked:
		return notify.SeverityInfo
	default:
		return notify.SeveritySuccess
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func verbFor(target domain.State) string {
	switch target {
	case domain.StateApproved:
		return "approve"
	case domain.StateRejected:
		return "reject"
	case domain.StateActive:
		return "activate"
	case domain.StateBlocked:
		return "deactivate"
	default:
		return "update"
	}
}

func pastVerbFor(target domain.State) string {
	switch target {
	case domain.StateApproved:
		return "approved"
	case domain.StateRejected:
		return "rejected"
	case domain.StateActive:
		return "activated"
	case domain.StateBlocked:
		return "deactivated"
	default:
		return "updated"
	}
}
