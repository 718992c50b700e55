package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/brunovale/lead-exchange/internal/infra/http/middleware"
	"github.com/brunovale/lead-exchange/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type CheckoutHandler struct {
	BeginUC *usecase.BeginCheckoutUseCase
}

func NewCheckoutHandler(beginUC *usecase.BeginCheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{BeginUC: beginUC}
}

type beginCheckoutRequest struct {
	BuyerEmail string `json:"buyer_email"`
}

func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	var req beginCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}

	output, err := h.BeginUC.Execute(r.Context(), session, chi.URLParam(r, "leadID"), req.BuyerEmail)
	if err != nil {
		middleware.RecordCheckoutSession("failed")
		writeError(w, err)
		return
	}

	middleware.RecordCheckoutSession("opened")
	writeJSON(w, http.StatusOK, output)
}

// Cancel: o buyer voltou do checkout sem pagar; solta a reserva. O guard
// de dono fica no usecase.
func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	if err := h.BeginUC.Cancel(r.Context(), session, chi.URLParam(r, "leadID")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
