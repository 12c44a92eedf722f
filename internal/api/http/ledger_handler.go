package http

import (
	"net/http"

	"totalpark-backend/internal/domain"
	"totalpark-backend/internal/service"
)

type LedgerHandler struct {
	ledger service.LedgerService
}

func NewLedgerHandler(ledger service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

type balanceResponse struct {
	BalanceCents int32 `json:"balance_cents"`
}

func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	payerID, _ := UserIDFrom(r.Context())

	balance, err := h.ledger.GetBalance(r.Context(), payerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{BalanceCents: balance})
}

type depositRequest struct {
	AmountCents int32  `json:"amount_cents"`
	Description string `json:"description"`
}

func (h *LedgerHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	payerID, _ := UserIDFrom(r.Context())

	var req depositRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	payment, err := h.ledger.Deposit(r.Context(), payerID, req.AmountCents, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

type paymentListResponse struct {
	Payments   []domain.Payment `json:"payments"`
	TotalCount int32            `json:"total_count"`
}

func (h *LedgerHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payerID, _ := UserIDFrom(r.Context())
	page, pageSize := pagination(r)

	items, total, err := h.ledger.ListPayments(r.Context(), payerID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paymentListResponse{Payments: items, TotalCount: total})
}
