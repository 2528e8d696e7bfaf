// Package adapters provides the per-entity-type implementations of the
// moderation engine's Adapter contract. Each one wraps the remote admin API
// for its entity and holds no queue state of its own.
package adapters

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"adminconsole/internal/api"
	"adminconsole/internal/domain"
	"adminconsole/internal/moderation"
)

const defaultPageSize = 10

// errUnsupportedTransition guards against targets an entity's state machine
// does not define.
var errUnsupportedTransition = errors.New("unsupported transition target")

func fetchErr(entity string, tab moderation.Tab, err error) error {
	return &moderation.FetchError{Entity: entity, Tab: tab.Name, Err: err}
}

func transitionErr(entity, itemID string, target domain.State, err error) error {
	return &moderation.TransitionError{Entity: entity, ItemID: itemID, Target: string(target), Err: err}
}

// normalizeState maps a wire status string onto a State, falling back to the
// tab's own state when the server omits it.
func normalizeState(wire string, fallback domain.State) domain.State {
	switch strings.ToLower(strings.TrimSpace(wire)) {
	case "pending":
		return domain.StatePending
	case "approved", "active":
		return domain.StateApproved
	case "rejected":
		return domain.StateRejected
	case "used":
		return domain.StateUsed
	default:
		return fallback
	}
}

// pageQuery builds the ?page&limit query for paginated tabs.
func pageQuery(page, limit int) url.Values {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q
}

// dataPagination is the in-data pagination block some endpoints return.
type dataPagination struct {
	TotalCount  int `json:"totalCount"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// paginationFrom reconciles the two places the service reports pagination:
// inside data (recharges) or at the envelope top level (withdrawals, where
// results stands in for a page count).
func paginationFrom(env *api.Envelope, data dataPagination) *moderation.Pagination {
	if data.TotalPages > 0 || data.TotalCount > 0 {
		page := data.CurrentPage
		if page < 1 {
			page = 1
		}
		totalPages := data.TotalPages
		if totalPages < 1 {
			totalPages = 1
		}
		return &moderation.Pagination{Page: page, TotalPages: totalPages, TotalCount: data.TotalCount}
	}
	if env.TotalPages > 0 {
		page := env.Page
		if page < 1 {
			page = 1
		}
		return &moderation.Pagination{Page: page, TotalPages: env.TotalPages, TotalCount: env.Results}
	}
	return nil
}
