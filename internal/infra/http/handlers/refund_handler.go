package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/brunovale/lead-exchange/internal/entity"
	"github.com/brunovale/lead-exchange/internal/infra/http/middleware"
	"github.com/brunovale/lead-exchange/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type RefundHandler struct {
	RequestUC *usecase.RequestRefundUseCase
	LeadRepo  entity.LeadRepositoryInterface
}

func NewRefundHandler(requestUC *usecase.RequestRefundUseCase, leadRepo entity.LeadRepositoryInterface) *RefundHandler {
	return &RefundHandler{RequestUC: requestUC, LeadRepo: leadRepo}
}

type refundRequestBody struct {
	Reason string `json:"reason"`
}

func (h *RefundHandler) Request(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	var body refundRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}

	req, err := h.RequestUC.Execute(r.Context(), session, chi.URLParam(r, "id"), body.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, req)
}

type refundWindowResponse struct {
	Remaining *usecase.Remaining `json:"remaining"`
	Expired   bool               `json:"expired"`
}

// Window expõe o countdown da janela de 48h pro display. Remaining nulo
// com Expired true é o sinal de "Expired" na UI.
func (h *RefundHandler) Window(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.SessionFrom(r.Context()); !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	lead, err := h.LeadRepo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Code: "LEAD_NOT_FOUND", Error: "lead not found"})
			return
		}
		writeError(w, err)
		return
	}

	if lead.PurchasedAt == nil {
		writeJSON(w, http.StatusOK, refundWindowResponse{Remaining: nil, Expired: false})
		return
	}

	remaining := usecase.ConfirmationTimeRemaining(*lead.PurchasedAt, time.Now())
	writeJSON(w, http.StatusOK, refundWindowResponse{
		Remaining: remaining,
		Expired:   remaining == nil,
	})
}
