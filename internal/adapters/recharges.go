package adapters

import (
	"context"
	"fmt"
	"time"

	"adminconsole/internal/api"
	"adminconsole/internal/domain"
	"adminconsole/internal/moderation"
	apperrors "adminconsole/pkg/errors"
	"adminconsole/pkg/logger"

	"github.com/shopspring/decimal"
)

// Recharges moderates investment recharge submissions. Its transition
// endpoints are path-parameter shaped, unlike the other entities.
type Recharges struct {
	client   *api.Client
	log      logger.Logger
	pageSize int
}

func NewRecharges(client *api.Client, pageSize int, log logger.Logger) *Recharges {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Recharges{client: client, pageSize: pageSize, log: log}
}

var rechargeTabs = []moderation.Tab{
	{Name: "pending", State: domain.StatePending},
	{Name: "approved", State: domain.StateApproved, Paginated: true},
	{Name: "rejected", State: domain.StateRejected, Paginated: true},
}

func (a *Recharges) Entity() string         { return "recharge" }
func (a *Recharges) Tabs() []moderation.Tab { return rechargeTabs }

func (a *Recharges) IdentityKey(item moderation.Item[domain.RechargePayload]) string {
	return item.ID
}

func (a *Recharges) RequiredFields(target domain.State) []string {
	if target == domain.StateRejected {
		return []string{"reason"}
	}
	return nil
}

type rechargeWire struct {
	ID string `json:"_id"`
	domain.Owner
	PaymentID     string          `json:"paymentId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	ScreenshotURL string          `json:"screenshotUrl"`
	Status        string          `json:"status"`
	Date          time.Time       `json:"date"`
}

func (a *Recharges) FetchPage(ctx context.Context, tab moderation.Tab, page int) (moderation.Page[domain.RechargePayload], error) {
	var out moderation.Page[domain.RechargePayload]

	var path string
	switch tab.Name {
	case "pending":
		path = "/admin/investment/recharges/pending"
	case "approved":
		path = "/admin/investment/recharges/approved"
	case "rejected":
		path = "/admin/investment/recharges/rejected"
	default:
		return out, fetchErr(a.Entity(), tab, apperrors.ErrUnknownTab)
	}

	var env *api.Envelope
	var err error
	if tab.Paginated {
		env, err = a.client.Get(ctx, path, pageQuery(page, a.pageSize))
	} else {
		env, err = a.client.Get(ctx, path, nil)
	}
	if err != nil {
		return out, fetchErr(a.Entity(), tab, err)
	}

	var data struct {
		Recharges []rechargeWire `json:"recharges"`
		dataPagination
	}
	if err := env.DecodeData(&data); err != nil {
		return out, fetchErr(a.Entity(), tab, err)
	}

	for _, w := range data.Recharges {
		out.Items = append(out.Items, moderation.Item[domain.RechargePayload]{
			ID:        w.ID,
			Owner:     w.Owner,
			State:     normalizeState(w.Status, tab.State),
			CreatedAt: w.Date,
			Payload: domain.RechargePayload{
				PaymentID:     w.PaymentID,
				Amount:        w.Amount,
				Currency:      w.Currency,
				ScreenshotURL: w.ScreenshotURL,
			},
		})
	}
	if tab.Paginated {
		out.Pagination = paginationFrom(env, data.dataPagination)
	}
	return out, nil
}

func (a *Recharges) Transition(ctx context.Context, item moderation.Item[domain.RechargePayload], target domain.State, extra moderation.Fields) (string, error) {
	base := fmt.Sprintf("/admin/investment/recharges/%s/%s", item.Owner.ID, item.Payload.PaymentID)

	var (
		path string
		body interface{}
	)
	switch target {
	case domain.StateApproved:
		path = base + "/approve"
	case domain.StateRejected:
		path = base + "/reject"
		body = map[string]string{"reason": extra["reason"]}
	default:
		return "", transitionErr(a.Entity(), item.ID, target, errUnsupportedTransition)
	}

	env, err := a.client.Post(ctx, path, body)
	if err != nil {
		return "", transitionErr(a.Entity(), item.ID, target, err)
	}
	return env.Message, nil
}
