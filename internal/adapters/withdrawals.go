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

// Withdrawals moderates payout requests. Approval must carry the bank/crypto
// transaction id the operator settled with.
type Withdrawals struct {
	client   *api.Client
	log      logger.Logger
	pageSize int
}

func NewWithdrawals(client *api.Client, pageSize int, log logger.Logger) *Withdrawals {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Withdrawals{client: client, pageSize: pageSize, log: log}
}

var withdrawalTabs = []moderation.Tab{
	{Name: "pending", State: domain.StatePending},
	{Name: "approved", State: domain.StateApproved, Paginated: true},
	{Name: "rejected", State: domain.StateRejected, Paginated: true},
}

func (a *Withdrawals) Entity() string         { return "withdrawal" }
func (a *Withdrawals) Tabs() []moderation.Tab { return withdrawalTabs }

func (a *Withdrawals) IdentityKey(item moderation.Item[domain.WithdrawalPayload]) string {
	return item.ID
}

func (a *Withdrawals) RequiredFields(target domain.State) []string {
	switch target {
	case domain.StateApproved:
		return []string{"transactionId"}
	case domain.StateRejected:
		return []string{"reason"}
	default:
		return nil
	}
}

type withdrawalWire struct {
	ID string `json:"_id"`
	domain.Owner
	Amount         decimal.Decimal      `json:"amount"`
	RequestDate    time.Time            `json:"requestDate"`
	Status         string               `json:"status"`
	PaymentMethod  string               `json:"paymentMethod"`
	PaymentDetails domain.PayoutDetails `json:"paymentDetails"`
	ProcessedDate  *time.Time           `json:"processedDate"`
	TransactionID  string               `json:"transactionId"`
}

func (w withdrawalWire) item(fallback domain.State) moderation.Item[domain.WithdrawalPayload] {
	return moderation.Item[domain.WithdrawalPayload]{
		ID:        w.ID,
		Owner:     w.Owner,
		State:     normalizeState(w.Status, fallback),
		CreatedAt: w.RequestDate,
		Payload: domain.WithdrawalPayload{
			Amount:        w.Amount,
			Method:        w.PaymentMethod,
			Details:       w.PaymentDetails,
			TransactionID: w.TransactionID,
			ProcessedDate: w.ProcessedDate,
		},
	}
}

func (a *Withdrawals) FetchPage(ctx context.Context, tab moderation.Tab, page int) (moderation.Page[domain.WithdrawalPayload], error) {
	var out moderation.Page[domain.WithdrawalPayload]

	path := "/admin/withdrawals/" + tab.Name
	switch tab.Name {
	case "pending", "approved", "rejected":
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
		Withdrawals []withdrawalWire `json:"withdrawals"`
		dataPagination
	}
	if err := env.DecodeData(&data); err != nil {
		return out, fetchErr(a.Entity(), tab, err)
	}

	for _, w := range data.Withdrawals {
		out.Items = append(out.Items, w.item(tab.State))
	}
	if tab.Paginated {
		out.Pagination = paginationFrom(env, data.dataPagination)
	}
	return out, nil
}

func (a *Withdrawals) Transition(ctx context.Context, item moderation.Item[domain.WithdrawalPayload], target domain.State, extra moderation.Fields) (string, error) {
	var (
		path string
		body map[string]string
	)
	switch target {
	case domain.StateApproved:
		path = "/admin/withdrawals/approve"
		body = map[string]string{
			"userId":        item.Owner.ID,
			"withdrawalId":  item.ID,
			"transactionId": extra["transactionId"],
		}
	case domain.StateRejected:
		// The reject endpoint keys on the withdrawal alone.
		path = "/admin/withdrawals/reject"
		body = map[string]string{"withdrawalId": item.ID, "reason": extra["reason"]}
	default:
		return "", transitionErr(a.Entity(), item.ID, target, errUnsupportedTransition)
	}

	env, err := a.client.Post(ctx, path, body)
	if err != nil {
		return "", transitionErr(a.Entity(), item.ID, target, err)
	}
	return env.Message, nil
}
