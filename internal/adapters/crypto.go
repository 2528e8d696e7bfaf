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

// Crypto moderates coin purchase/sell requests.
type Crypto struct {
	client *api.Client
	log    logger.Logger
}

func NewCrypto(client *api.Client, log logger.Logger) *Crypto {
	if log == nil {
		log = logger.NewNop()
	}
	return &Crypto{client: client, log: log}
}

var cryptoTabs = []moderation.Tab{
	{Name: "pending", State: domain.StatePending},
	{Name: "approved", State: domain.StateApproved},
	{Name: "rejected", State: domain.StateRejected},
}

func (a *Crypto) Entity() string         { return "crypto request" }
func (a *Crypto) Tabs() []moderation.Tab { return cryptoTabs }

func (a *Crypto) IdentityKey(item moderation.Item[domain.CryptoPayload]) string {
	return item.ID
}

func (a *Crypto) RequiredFields(target domain.State) []string {
	if target == domain.StateRejected {
		return []string{"reason"}
	}
	return nil
}

type cryptoWire struct {
	RequestID string `json:"requestId"`
	domain.Owner
	Type        string          `json:"type"`
	CoinValue   decimal.Decimal `json:"coinValue"`
	Quantity    decimal.Decimal `json:"quantity"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (a *Crypto) FetchPage(ctx context.Context, tab moderation.Tab, page int) (moderation.Page[domain.CryptoPayload], error) {
	var out moderation.Page[domain.CryptoPayload]

	switch tab.Name {
	case "pending", "approved", "rejected":
	default:
		return out, fetchErr(a.Entity(), tab, apperrors.ErrUnknownTab)
	}

	env, err := a.client.Get(ctx, "/admin/crypto/requests/"+tab.Name, nil)
	if err != nil {
		return out, fetchErr(a.Entity(), tab, err)
	}

	var data struct {
		Requests []cryptoWire `json:"requests"`
	}
	if err := env.DecodeData(&data); err != nil {
		return out, fetchErr(a.Entity(), tab, err)
	}

	for _, w := range data.Requests {
		out.Items = append(out.Items, moderation.Item[domain.CryptoPayload]{
			ID:        w.RequestID,
			Owner:     w.Owner,
			State:     normalizeState(w.Status, tab.State),
			CreatedAt: w.CreatedAt,
			Payload: domain.CryptoPayload{
				Side:        domain.CryptoSide(w.Type),
				CoinValue:   w.CoinValue,
				Quantity:    w.Quantity,
				TotalAmount: w.TotalAmount,
			},
		})
	}
	return out, nil
}

func (a *Crypto) Transition(ctx context.Context, item moderation.Item[domain.CryptoPayload], target domain.State, extra moderation.Fields) (string, error) {
	var (
		path string
		body map[string]string
	)
	switch target {
	case domain.StateApproved:
		path = "/admin/crypto/requests/approve"
		body = map[string]string{"userId": item.Owner.ID, "requestId": item.ID}
	case domain.StateRejected:
		path = "/admin/crypto/requests/reject"
		body = map[string]string{"userId": item.Owner.ID, "requestId": item.ID, "reason": extra["reason"]}
	default:
		return "", transitionErr(a.Entity(), item.ID, target, errUnsupportedTransition)
	}

	env, err := a.client.Post(ctx, path, body)
	if err != nil {
		return "", transitionErr(a.Entity(), item.ID, target, err)
	}
	return env.Message, nil
}
