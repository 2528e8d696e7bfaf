package adapters

import (
	"context"
	"time"

	"adminconsole/internal/api"
	"adminconsole/internal/domain"
	"adminconsole/internal/moderation"
	apperrors "adminconsole/pkg/errors"
	"adminconsole/pkg/logger"

	"github.com/shopspring/decimal"
)

// Payments moderates subscription payment submissions.
type Payments struct {
	client *api.Client
	log    logger.Logger
}

func NewPayments(client *api.Client, log logger.Logger) *Payments {
	if log == nil {
		log = logger.NewNop()
	}
	return &Payments{client: client, log: log}
}

var paymentTabs = []moderation.Tab{
	{Name: "all", AllStates: true},
	{Name: "pending", State: domain.StatePending},
	{Name: "approved", State: domain.StateApproved},
	{Name: "rejected", State: domain.StateRejected},
}

func (a *Payments) Entity() string         { return "payment" }
func (a *Payments) Tabs() []moderation.Tab { return paymentTabs }

func (a *Payments) IdentityKey(item moderation.Item[domain.PaymentPayload]) string {
	return item.ID
}

func (a *Payments) RequiredFields(target domain.State) []string {
	if target == domain.StateRejected {
		return []string{"reason"}
	}
	return nil
}

type paymentWire struct {
	ID string `json:"_id"`
	domain.Owner
	PaymentID     string          `json:"paymentId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Purpose       string          `json:"purpose"`
	Method        string          `json:"method"`
	Status        string          `json:"status"`
	ScreenshotURL string          `json:"screenshotUrl"`
	Date          time.Time       `json:"date"`
}

func (w paymentWire) item(fallback domain.State) moderation.Item[domain.PaymentPayload] {
	return moderation.Item[domain.PaymentPayload]{
		ID:        w.ID,
		Owner:     w.Owner,
		State:     normalizeState(w.Status, fallback),
		CreatedAt: w.Date,
		Payload: domain.PaymentPayload{
			PaymentID:     w.PaymentID,
			Amount:        w.Amount,
			Currency:      w.Currency,
			Purpose:       w.Purpose,
			Method:        w.Method,
			ScreenshotURL: w.ScreenshotURL,
		},
	}
}

func (a *Payments) FetchPage(ctx context.Context, tab moderation.Tab, page int) (moderation.Page[domain.PaymentPayload], error) {
	var out moderation.Page[domain.PaymentPayload]

	// approved has its own server-filtered endpoint; everything else comes
	// from the mixed-status list.
	if tab.Name == "approved" {
		env, err := a.client.Get(ctx, "/admin/payments/approved", nil)
		if err != nil {
			return out, fetchErr(a.Entity(), tab, err)
		}
		var data struct {
			ApprovedPayments []paymentWire `json:"approvedPayments"`
		}
		if err := env.DecodeData(&data); err != nil {
			return out, fetchErr(a.Entity(), tab, err)
		}
		for _, w := range data.ApprovedPayments {
			out.Items = append(out.Items, w.item(tab.State))
		}
		return out, nil
	}

	switch tab.Name {
	case "all", "pending", "rejected":
	default:
		return out, fetchErr(a.Entity(), tab, apperrors.ErrUnknownTab)
	}

	env, err := a.client.Get(ctx, "/admin/payments", nil)
	if err != nil {
		return out, fetchErr(a.Entity(), tab, err)
	}
	var data struct {
		Payments []paymentWire `json:"payments"`
	}
	if err := env.DecodeData(&data); err != nil {
		return out, fetchErr(a.Entity(), tab, err)
	}

	// The list endpoint returns every status; state-bound tabs keep only
	// their own.
	for _, w := range data.Payments {
		item := w.item(domain.StatePending)
		if tab.AllStates || item.State == tab.State {
			out.Items = append(out.Items, item)
		}
	}
	return out, nil
}

func (a *Payments) Transition(ctx context.Context, item moderation.Item[domain.PaymentPayload], target domain.State, extra moderation.Fields) (string, error) {
	var (
		path string
		body map[string]string
	)
	switch target {
	case domain.StateApproved:
		path = "/admin/payments/approve"
		body = map[string]string{"userId": item.Owner.ID, "paymentId": item.ID}
	case domain.StateRejected:
		path = "/admin/payments/reject"
		body = map[string]string{"userId": item.Owner.ID, "paymentId": item.ID, "reason": extra["reason"]}
	default:
		return "", transitionErr(a.Entity(), item.ID, target, errUnsupportedTransition)
	}

	env, err := a.client.Post(ctx, path, body)
	if err != nil {
		return "", transitionErr(a.Entity(), item.ID, target, err)
	}
	return env.Message, nil
}

// UpdateStatus sets a payment's status directly, outside the approve/reject
// flow. The all tab uses it to move a row back to pending or straight to
// rejected.
func (a *Payments) UpdateStatus(ctx context.Context, paymentID string, status domain.State) (string, error) {
	env, err := a.client.Put(ctx, "/admin/payments/"+paymentID+"/status", map[string]string{
		"status": string(status),
	})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}
