package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"adminconsole/internal/api"
	"adminconsole/internal/domain"
	"adminconsole/internal/moderation"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAdminAPI spins up a fake admin service and returns a client against it.
func newAdminAPI(t *testing.T, configure func(r *mux.Router)) *api.Client {
	t.Helper()
	r := mux.NewRouter()
	configure(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return api.NewClientWithHTTP(srv.URL, srv.Client(), api.Anonymous(), nil)
}

func writeOK(w http.ResponseWriter, data interface{}) {
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
		"data":   data,
	})
}

func writeOKMessage(w http.ResponseWriter, message string) {
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "success",
		"message": message,
		"data":    map[string]interface{}{},
	})
}

func tabNamed(t *testing.T, tabs []moderation.Tab, name string) moderation.Tab {
	t.Helper()
	for _, tab := range tabs {
		if tab.Name == name {
			return tab
		}
	}
	t.Fatalf("no tab named %q", name)
	return moderation.Tab{}
}

func TestPaymentsFetchPending(t *testing.T) {
	client := newAdminAPI(t, func(r *mux.Router) {
		r.HandleFunc("/admin/payments", func(w http.ResponseWriter, req *http.Request) {
			writeOK(w, map[string]interface{}{
				"payments": []map[string]interface{}{
					{
						"_id":       "p1",
						"userId":    "u1",
						"userName":  "Asha",
						"userEmail": "asha@example.com",
						"paymentId": "PAY-001",
						"amount":    "1500.50",
						"currency":  "INR",
						"status":    "pending",
					},
				},
			})
		}).Methods(http.MethodGet)
	})

	adapter := NewPayments(client, nil)
	page, err := adapter.FetchPage(context.Background(), tabNamed(t, adapter.Tabs(), "pending"), 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	item := page.Items[0]
	assert.Equal(t, "p1", item.ID)
	assert.Equal(t, domain.StatePending, item.State)
	assert.Equal(t, "Asha", item.Owner.Name)
	assert.True(t, item.Payload.Amount.Equal(decimal.RequireFromString("1500.50")))
	assert.Nil(t, page.Pagination, "payments tabs are unpaginated")
}

func mixedStatusPayments(t *testing.T) *Payments {
	client := newAdminAPI(t, func(r *mux.Router) {
		r.HandleFunc("/admin/payments", func(w http.ResponseWriter, req *http.Request) {
			writeOK(w, map[string]interface{}{
				"payments": []map[string]interface{}{
					{"_id": "p1", "userId": "u1", "paymentId": "PAY-001", "amount": "100", "status": "pending"},
					{"_id": "p2", "userId": "u2", "paymentId": "PAY-002", "amount": "200", "status": "approved"},
					{"_id": "p3", "userId": "u3", "paymentId": "PAY-003", "amount": "300", "status": "rejected"},
				},
			})
		}).Methods(http.MethodGet)
	})
	return NewPayments(client, nil)
}

func TestPaymentsPendingTabFiltersMixedStatuses(t *testing.T) {
	adapter := mixedStatusPayments(t)
	page, err := adapter.FetchPage(context.Background(), tabNamed(t, adapter.Tabs(), "pending"), 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1, "the list endpoint returns every status; only pending belongs here")
	assert.Equal(t, "p1", page.Items[0].ID)
	assert.Equal(t, domain.StatePending, page.Items[0].State)
}

func TestPaymentsRejectedTabFiltersMixedStatuses(t *testing.T) {
	adapter := mixedStatusPayments(t)
	page, err := adapter.FetchPage(context.Background(), tabNamed(t, adapter.Tabs(), "rejected"), 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "p3", page.Items[0].ID)
}

func TestPaymentsAllTabCarriesEveryStatus(t *testing.T) {
	adapter := mixedStatusPayments(t)
	tab := tabNamed(t, adapter.Tabs(), "all")
	assert.True(t, tab.AllStates)

	page, err := adapter.FetchPage(context.Background(), tab, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, domain.StateApproved, page.Items[1].State)
	assert.Equal(t, domain.StateRejected, page.Items[2].State)
}

func TestPaymentsUpdateStatus(t *testing.T) {
	var gotPath string
	var body map[string]string
	client := newAdminAPI(t, func(r *mux.Router) {
		r.HandleFunc("/admin/payments/{id}/status", func(w http.ResponseWriter, req *http.Request) {
			gotPath = req.URL.Path
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			writeOKMessage(w, "Payment status updated")
		}).Methods(http.MethodPut)
	})

	adapter := NewPayments(client, nil)
	msg, err := adapter.UpdateStatus(context.Background(), "p2", domain.StateRejected)
	require.NoError(t, err)
	assert.Equal(t, "Payment status updated", msg)
	assert.Equal(t, "/admin/payments/p2/status", gotPath)
	assert.Equal(t, map[string]string{"status": "rejected"}, body)
}

func TestPaymentsFetchApprovedUsesSeparateEndpoint(t *testing.T) {
	client := newAdminAPI(t, func(r *mux.Router) {
		r.HandleFunc("/admin/payments/approved", func(w http.ResponseWriter, req *http.Request) {
			writeOK(w, map[string]interface{}{
				"approvedPayments": []map[string]interface{}{
					{"_id": "p2", "userId": "u2", "paymentId": "PAY-002", "amount": "99", "status": "approved"},
				},
			})
		}).Methods(http.MethodGet)
	})

	adapter := NewPayments(client, nil)
	page, err := adapter.FetchPage(context.Background(), tabNamed(t, adapter.Tabs(), "approved"), 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, domain.StateApproved, page.Items[0].State)
}

func TestPaymentsTransitionBodies(t *testing.T) {
	var approveBody, rejectBody map[string]string
	client := newAdminAPI(t, func(r *mux.Router) {
		r.HandleFunc("/admin/payments/approve", func(w http.ResponseWriter, req *http.Request) {
			require.NoError(t, json.NewDecoder(req.Body).Decode(&approveBody))
			writeOKMessage(w, "Payment approved successfully")
		}).Methods(http.MethodPost)
		r.HandleFunc("/admin/payments/reject", func(w http.ResponseWriter, req *http.Request) {
			require.NoError(t, json.NewDecoder(req.Body).Decode(&rejectBody))
			writeOKMessage(w, "Payment rejected")
		}).Methods(http.MethodPost)
	})

	adapter := NewPayments(client, nil)
	item := moderation.Item[domain.PaymentPayload]{ID: "p1", Owner: domain.Owner{ID: "u1"}}

	msg, err := adapter.Transition(context.Background(), item, domain.StateApproved, moderation.Fields{})
	require.NoError(t, err)
	assert.Equal(t, "Payment approved successfully", msg)
	assert.Equal(t, map[string]string{"userId": "u1", "paymentId": "p1"}, approveBody)

	_, err = adapter.Transition(context.Background(), item, domain.StateRejected, moderation.Fields{"reason": "blurry screenshot"})
	require.NoError(t, err)
	assert.Equal(t, "blurry screenshot", rejectBody["reason"])
}

func TestPaymentsUnsupportedTransition(t *testing.T) {
	adapter := NewPayments(nil, nil)
	item := moderation.Item[domain.PaymentPayload]{ID: "p1"}

	_, err := adapter.Transition(context.Background(), item, domain.StateBlocked, moderation.Fields{})
	var te *moderation.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "p1", te.ItemID)
}

func TestPaymentsRequiredFields(t *testing.T) {
	adapter := NewPayments(nil, nil)
	assert.Equal(t, []string{"reason"}, adapter.RequiredFields(domain.StateRejected))
	assert.Nil(t, adapter.RequiredFields(domain.StateApproved))
}
