package adapters

import (
	"context"
	"time"

	"adminconsole/internal/api"
	"adminconsole/internal/domain"
	"adminconsole/internal/moderation"
	apperrors "adminconsole/pkg/errors"
	"adminconsole/pkg/logger"
)

// Accounts drives the activate/deactivate flow for user accounts. It is a
// two-state machine (active <-> blocked) rather than a pending queue, but it
// runs through the same engine: one all-states tab, patch-in-place updates.
type Accounts struct {
	client *api.Client
	log    logger.Logger
}

func NewAccounts(client *api.Client, log logger.Logger) *Accounts {
	if log == nil {
		log = logger.NewNop()
	}
	return &Accounts{client: client, log: log}
}

var accountTabs = []moderation.Tab{
	{Name: "all", AllStates: true},
}

func (a *Accounts) Entity() string         { return "account" }
func (a *Accounts) Tabs() []moderation.Tab { return accountTabs }

func (a *Accounts) IdentityKey(item moderation.Item[domain.AccountPayload]) string {
	return item.ID
}

func (a *Accounts) RequiredFields(target domain.State) []string {
	if target == domain.StateBlocked {
		return []string{"reason"}
	}
	return nil
}

type accountWire struct {
	ID                 string    `json:"_id"`
	Name               string    `json:"name"`
	UserID             string    `json:"userId"`
	Email              string    `json:"email"`
	IsActive           bool      `json:"isActive"`
	Rank               string    `json:"rank"`
	TeamSize           int       `json:"teamSize"`
	DeactivationReason string    `json:"deactivationReason"`
	CreatedAt          time.Time `json:"createdAt"`
}

func (a *Accounts) FetchPage(ctx context.Context, tab moderation.Tab, page int) (moderation.Page[domain.AccountPayload], error) {
	var out moderation.Page[domain.AccountPayload]

	if tab.Name != "all" {
		return out, fetchErr(a.Entity(), tab, apperrors.ErrUnknownTab)
	}

	env, err := a.client.Get(ctx, "/admin/users", nil)
	if err != nil {
		return out, fetchErr(a.Entity(), tab, err)
	}

	var data struct {
		Users []accountWire `json:"users"`
	}
	if err := env.DecodeData(&data); err != nil {
		return out, fetchErr(a.Entity(), tab, err)
	}

	for _, w := range data.Users {
		state := domain.StateBlocked
		if w.IsActive {
			state = domain.StateActive
		}
		out.Items = append(out.Items, moderation.Item[domain.AccountPayload]{
			ID:              w.ID,
			Owner:           domain.Owner{ID: w.ID, Name: w.Name, Email: w.Email, Code: w.UserID},
			State:           state,
			CreatedAt:       w.CreatedAt,
			RejectionReason: w.DeactivationReason,
			Payload: domain.AccountPayload{
				Rank:               w.Rank,
				TeamSize:           w.TeamSize,
				IsActive:           w.IsActive,
				DeactivationReason: w.DeactivationReason,
			},
		})
	}
	return out, nil
}

func (a *Accounts) Transition(ctx context.Context, item moderation.Item[domain.AccountPayload], target domain.State, extra moderation.Fields) (string, error) {
	var (
		path string
		body interface{}
	)
	switch target {
	case domain.StateBlocked:
		path = "/admin/users/" + item.ID + "/deactivate"
		body = map[string]string{"reason": extra["reason"]}
	case domain.StateActive:
		path = "/admin/users/" + item.ID + "/activate"
	default:
		return "", transitionErr(a.Entity(), item.ID, target, errUnsupportedTransition)
	}

	env, err := a.client.Post(ctx, path, body)
	if err != nil {
		return "", transitionErr(a.Entity(), item.ID, target, err)
	}
	return env.Message, nil
}
