package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/payforge/checkout/internal/application/orchestrator"
	domain "github.com/payforge/checkout/internal/domain/payment"
	"github.com/shopspring/decimal"
)

type Handler struct {
	orch *orchestrator.Orchestrator
}

func NewHandler(orch *orchestrator.Orchestrator) *Handler {
	return &Handler{orch: orch}
}

func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/payment/prepare", h.method(http.MethodPost, h.handlePrepare))
	mux.HandleFunc("/payment/state", h.method(http.MethodGet, h.handleState))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return mux
}

type prepareRequest struct {
	Amount     string            `json:"amount"`
	Currency   string            `json:"currency"`
	MerchantID string            `json:"merchant_id"`
	OrderID    string            `json:"order_id"`
	Metadata   map[string]string `json:"metadata"`
}

type prepareResponse struct {
	Attempt uint64 `json:"attempt"`
}

func (h *Handler) handlePrepare(w http.ResponseWriter, r *http.Request) {
	var req prepareRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("amount must be a decimal number"))
		return
	}
	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	metadata := make(map[string]string, len(req.Metadata)+2)
	for k, v := range req.Metadata {
		metadata[k] = v
	}
	if req.MerchantID != "" {
		metadata["merchant_id"] = req.MerchantID
	}
	if req.OrderID != "" {
		metadata["order_id"] = req.OrderID
	}

	init, err := domain.NewInitialization(amount, currency, metadata)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	attempt := h.orch.Start(r.Context(), init)
	writeJSON(w, http.StatusAccepted, prepareResponse{Attempt: attempt})
}

type stateRequest struct {
	ID          string            `json:"id"`
	AmountMinor int64             `json:"amount_minor"`
	Currency    string            `json:"currency"`
	MerchantID  string            `json:"merchant_id"`
	OrderID     string            `json:"order_id"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   string            `json:"created_at"`
}

type stateResponse struct {
	Phase   string        `json:"phase"`
	Attempt uint64        `json:"attempt"`
	Request *stateRequest `json:"request,omitempty"`
	Error   string        `json:"error,omitempty"`
	Kind    string        `json:"error_kind,omitempty"`
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	st := h.orch.CurrentState()

	resp := stateResponse{
		Phase:   string(st.Phase),
		Attempt: st.Attempt,
	}
	if st.Request != nil {
		resp.Request = &stateRequest{
			ID:          st.Request.ID,
			AmountMinor: st.Request.AmountMinor,
			Currency:    st.Request.Currency,
			MerchantID:  st.Request.MerchantID,
			OrderID:     st.Request.OrderID,
			Metadata:    st.Request.Metadata,
			CreatedAt:   st.Request.CreatedAt.Format(time.RFC3339Nano),
		}
	}
	if st.Err != nil {
		resp.Error = st.Err.Error()
		resp.Kind = domain.Kind(st.Err)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) method(method string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
			return
		}
		handler(w, r)
	}
}

func decodeJSON(ctx context.Context, r *http.Request, dst any) error {
	_ = ctx
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInitialization),
		errors.Is(err, domain.ErrMissingMetadata):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, domain.ErrUnsupportedCurrency):
		writeError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, domain.ErrCollaboratorFailure):
		writeError(w, http.StatusBadGateway, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
