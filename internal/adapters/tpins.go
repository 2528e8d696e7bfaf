package adapters

import (
	"context"
	"time"

	"adminconsole/internal/api"
	"adminconsole/internal/domain"
	"adminconsole/internal/moderation"
	apperrors "adminconsole/pkg/errors"
	"adminconsole/pkg/logger"
	"adminconsole/pkg/validator"
)

// Tpins moderates TPIN activation requests. The pending endpoint and the
// history endpoint return different wire shapes; both are tagged with an
// explicit kind at fetch time so nothing downstream checks field presence.
type Tpins struct {
	client   *api.Client
	log      logger.Logger
	validate *validator.Validator
}

func NewTpins(client *api.Client, log logger.Logger) *Tpins {
	if log == nil {
		log = logger.NewNop()
	}
	return &Tpins{client: client, log: log, validate: validator.New()}
}

var tpinTabs = []moderation.Tab{
	{Name: "pending", State: domain.StatePending},
	{Name: "history", AllStates: true},
	{Name: "approved", State: domain.StateApproved},
	{Name: "rejected", State: domain.StateRejected},
	{Name: "used", State: domain.StateUsed},
}

func (a *Tpins) Entity() string         { return "tpin" }
func (a *Tpins) Tabs() []moderation.Tab { return tpinTabs }

func (a *Tpins) IdentityKey(item moderation.Item[domain.TpinPayload]) string {
	return item.ID
}

func (a *Tpins) RequiredFields(target domain.State) []string {
	if target == domain.StateRejected {
		return []string{"reason"}
	}
	return nil
}

type pendingTpinWire struct {
	domain.Owner
	Tpin struct {
		ID             string     `json:"_id"`
		Code           string     `json:"code"`
		IsUsed         bool       `json:"isUsed"`
		Status         string     `json:"status"`
		PurchaseDate   time.Time  `json:"purchaseDate"`
		ActivationDate *time.Time `json:"activationDate"`
	} `json:"tpin"`
}

type historyTpinWire struct {
	ID string `json:"_id"`
	domain.Owner
	TpinCode        string     `json:"tpinCode"`
	IsUsed          bool       `json:"isUsed"`
	Status          string     `json:"status"`
	PurchaseDate    time.Time  `json:"purchaseDate"`
	ActivationDate  *time.Time `json:"activationDate"`
	RejectionReason string     `json:"rejectionReason"`
}

func (a *Tpins) FetchPage(ctx context.Context, tab moderation.Tab, page int) (moderation.Page[domain.TpinPayload], error) {
	var out moderation.Page[domain.TpinPayload]

	if tab.Name == "pending" {
		env, err := a.client.Get(ctx, "/admin/tpin/pending", nil)
		if err != nil {
			return out, fetchErr(a.Entity(), tab, err)
		}
		var data struct {
			PendingRequests []pendingTpinWire `json:"pendingRequests"`
		}
		if err := env.DecodeData(&data); err != nil {
			return out, fetchErr(a.Entity(), tab, err)
		}
		for _, w := range data.PendingRequests {
			out.Items = append(out.Items, moderation.Item[domain.TpinPayload]{
				ID:        w.Tpin.ID,
				Owner:     w.Owner,
				State:     normalizeState(w.Tpin.Status, domain.StatePending),
				CreatedAt: w.Tpin.PurchaseDate,
				Payload: domain.TpinPayload{
					Kind:           domain.TpinKindPending,
					Code:           w.Tpin.Code,
					IsUsed:         w.Tpin.IsUsed,
					PurchaseDate:   w.Tpin.PurchaseDate,
					ActivationDate: w.Tpin.ActivationDate,
				},
			})
		}
		return out, nil
	}

	// history and its derived views share one endpoint; the derived tabs
	// filter on state or the used flag.
	env, err := a.client.Get(ctx, "/admin/tpins", nil)
	if err != nil {
		return out, fetchErr(a.Entity(), tab, err)
	}
	var data struct {
		Tpins []historyTpinWire `json:"tpins"`
	}
	if err := env.DecodeData(&data); err != nil {
		return out, fetchErr(a.Entity(), tab, err)
	}

	for _, w := range data.Tpins {
		item := moderation.Item[domain.TpinPayload]{
			ID:              w.ID,
			Owner:           w.Owner,
			State:           normalizeState(w.Status, domain.StatePending),
			CreatedAt:       w.PurchaseDate,
			RejectionReason: w.RejectionReason,
			Payload: domain.TpinPayload{
				Kind:           domain.TpinKindHistory,
				Code:           w.TpinCode,
				IsUsed:         w.IsUsed,
				PurchaseDate:   w.PurchaseDate,
				ActivationDate: w.ActivationDate,
			},
		}
		switch tab.Name {
		case "history":
			out.Items = append(out.Items, item)
		case "approved":
			if item.State == domain.StateApproved && !item.Payload.IsUsed {
				out.Items = append(out.Items, item)
			}
		case "rejected":
			if item.State == domain.StateRejected {
				out.Items = append(out.Items, item)
			}
		case "used":
			if item.Payload.IsUsed {
				item.State = domain.StateUsed
				out.Items = append(out.Items, item)
			}
		default:
			return moderation.Page[domain.TpinPayload]{}, fetchErr(a.Entity(), tab, apperrors.ErrUnknownTab)
		}
	}
	return out, nil
}

func (a *Tpins) Transition(ctx context.Context, item moderation.Item[domain.TpinPayload], target domain.State, extra moderation.Fields) (string, error) {
	var (
		path string
		body map[string]string
	)
	switch target {
	case domain.StateApproved:
		path = "/admin/tpin/approve"
		body = map[string]string{"userId": item.Owner.ID, "tpinId": item.ID}
	case domain.StateRejected:
		path = "/admin/tpin/reject"
		body = map[string]string{"userId": item.Owner.ID, "tpinId": item.ID, "reason": extra["reason"]}
	default:
		return "", transitionErr(a.Entity(), item.ID, target, errUnsupportedTransition)
	}

	env, err := a.client.Post(ctx, path, body)
	if err != nil {
		return "", transitionErr(a.Entity(), item.ID, target, err)
	}
	return env.Message, nil
}

// GenerateRequest is the admin-initiated TPIN issue command. Not a queue
// transition; validated and posted directly.
type GenerateRequest struct {
	UserID   string `json:"userId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0,lte=100"`
	Reason   string `json:"reason" validate:"required"`
}

func (a *Tpins) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if err := a.validate.Validate(req); err != nil {
		return "", err
	}
	env, err := a.client.Post(ctx, "/admin/tpin/generate", req)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}
