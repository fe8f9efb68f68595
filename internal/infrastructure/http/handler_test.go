package httptransport_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/payforge/checkout/internal/application/builder"
	"github.com/payforge/checkout/internal/application/orchestrator"
	"github.com/payforge/checkout/internal/domain/payment"
	httptransport "github.com/payforge/checkout/internal/infrastructure/http"
	"github.com/payforge/checkout/internal/infrastructure/id"
	"github.com/payforge/checkout/internal/infrastructure/memory"
)

func newServer(t *testing.T, currencies ...payment.Currency) (*httptest.Server, *orchestrator.Orchestrator) {
	t.Helper()
	if len(currencies) == 0 {
		currencies = []payment.Currency{payment.CurrencyUSD, payment.CurrencyEUR}
	}
	support := memory.NewCurrencySupport(currencies...)
	uc := builder.NewBuildRequestUseCase(support, id.NewUUIDGenerator(), nil, nil)
	orch := orchestrator.New(uc, nil, nil)

	srv := httptest.NewServer(httptransport.NewHandler(orch).Router())
	t.Cleanup(srv.Close)
	return srv, orch
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestPrepareAcceptsValidPayment(t *testing.T) {
	t.Parallel()

	srv, orch := newServer(t)

	resp := postJSON(t, srv.URL+"/payment/prepare", `{
		"amount": "100",
		"currency": "USD",
		"merchant_id": "m-1",
		"order_id": "o-1"
	}`)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var accepted struct {
		Attempt uint64 `json:"attempt"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&accepted))
	require.Equal(t, uint64(1), accepted.Attempt)

	require.Eventually(t, func() bool {
		return orch.CurrentState().Phase == orchestrator.PhaseReady
	}, 2*time.Second, 10*time.Millisecond)

	st := orch.CurrentState()
	require.NotNil(t, st.Request)
	require.Equal(t, int64(10000), st.Request.AmountMinor)
	require.Equal(t, "USD", st.Request.Currency)
}

func TestStateReflectsReadyRequest(t *testing.T) {
	t.Parallel()

	srv, orch := newServer(t)

	postJSON(t, srv.URL+"/payment/prepare", `{
		"amount": "19.99",
		"currency": "eur",
		"merchant_id": "m-1",
		"order_id": "o-2"
	}`)
	require.Eventually(t, func() bool {
		return orch.CurrentState().Phase == orchestrator.PhaseReady
	}, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get(srv.URL + "/payment/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var state struct {
		Phase   string `json:"phase"`
		Attempt uint64 `json:"attempt"`
		Request *struct {
			AmountMinor int64  `json:"amount_minor"`
			Currency    string `json:"currency"`
			OrderID     string `json:"order_id"`
		} `json:"request"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	require.Equal(t, "ready", state.Phase)
	require.NotNil(t, state.Request)
	require.Equal(t, int64(1999), state.Request.AmountMinor)
	require.Equal(t, "EUR", state.Request.Currency)
	require.Equal(t, "o-2", state.Request.OrderID)
}

func TestStateReflectsFailedBuild(t *testing.T) {
	t.Parallel()

	// JPY parses but is outside the supported set, so the failure comes from
	// the builder, not the initialization.
	srv, orch := newServer(t, payment.CurrencyUSD)

	postJSON(t, srv.URL+"/payment/prepare", `{
		"amount": "500",
		"currency": "JPY",
		"merchant_id": "m-1",
		"order_id": "o-3"
	}`)
	require.Eventually(t, func() bool {
		return orch.CurrentState().Phase == orchestrator.PhaseFailed
	}, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get(srv.URL + "/payment/state")
	require.NoError(t, err)
	defer resp.Body.Close()

	var state struct {
		Phase string `json:"phase"`
		Kind  string `json:"error_kind"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	require.Equal(t, "failed", state.Phase)
	require.Equal(t, "unsupported_currency", state.Kind)
}

func TestPrepareRejectsBadInput(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{
			name: "malformed_amount",
			body: `{"amount": "ten", "currency": "USD", "merchant_id": "m-1", "order_id": "o-1"}`,
			want: http.StatusBadRequest,
		},
		{
			name: "zero_amount",
			body: `{"amount": "0", "currency": "USD", "merchant_id": "m-1", "order_id": "o-1"}`,
			want: http.StatusBadRequest,
		},
		{
			name: "unknown_currency",
			body: `{"amount": "10", "currency": "XYZ", "merchant_id": "m-1", "order_id": "o-1"}`,
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "unknown_field",
			body: `{"amount": "10", "currency": "USD", "surprise": true}`,
			want: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := postJSON(t, srv.URL+"/payment/prepare", tt.body)
			require.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)

	resp, err := http.Get(srv.URL + "/payment/prepare")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
