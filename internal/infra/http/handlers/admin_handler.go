package handlers

import (
	"net/http"

	"github.com/brunovale/lead-exchange/internal/infra/http/middleware"
	"github.com/brunovale/lead-exchange/internal/usecase"
	"github.com/go-chi/chi/v5"
)

// AdminHandler é o console: markPaid, refund, delete. Cada rota mapeia
// 1:1 numa transição do state machine.
type AdminHandler struct {
	AdminUC *usecase.AdminUseCase
}

func NewAdminHandler(adminUC *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{AdminUC: adminUC}
}

func (h *AdminHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	lead, err := h.AdminUC.MarkPaid(r.Context(), session, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func (h *AdminHandler) ApproveRefund(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	req, err := h.AdminUC.ApproveRefund(r.Context(), session, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordRefundResolved("approved")
	writeJSON(w, http.StatusOK, req)
}

func (h *AdminHandler) DenyRefund(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	req, err := h.AdminUC.DenyRefund(r.Context(), session, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordRefundResolved("denied")
	writeJSON(w, http.StatusOK, req)
}

func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	lead, err := h.AdminUC.DeleteLead(r.Context(), session, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}
