package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/brunovale/lead-exchange/internal/entity"
	"github.com/brunovale/lead-exchange/internal/infra/http/middleware"
	"github.com/brunovale/lead-exchange/internal/pricing"
	"github.com/brunovale/lead-exchange/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type LeadHandler struct {
	CreateUC    *usecase.CreateLeadUseCase
	UpdateUC    *usecase.UpdateLeadUseCase
	AdminUC     *usecase.AdminUseCase
	Repo        entity.LeadRepositoryInterface
	Pricing     pricing.Config
	rateLimiter *RateLimiter
}

func NewLeadHandler(createUC *usecase.CreateLeadUseCase, updateUC *usecase.UpdateLeadUseCase, adminUC *usecase.AdminUseCase, repo entity.LeadRepositoryInterface, cfg pricing.Config) *LeadHandler {
	return &LeadHandler{
		CreateUC:    createUC,
		UpdateUC:    updateUC,
		AdminUC:     adminUC,
		Repo:        repo,
		Pricing:     cfg,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min por IP
	}
}

// marketplaceLead é a view do buyer: preço já com markup, sem o contato
// completo (isso é o que ele está comprando).
type marketplaceLead struct {
	ID                 string `json:"id"`
	Type               string `json:"type"`
	Location           string `json:"location"`
	ZipCode            string `json:"zip_code"`
	Description        string `json:"description"`
	QualityRating      int    `json:"quality_rating"`
	ConfirmationStatus string `json:"confirmation_status"`
	Status             string `json:"status"`
	BuyerPrice         int64  `json:"buyer_price"`
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "Too many requests. Please try again later."})
		return
	}

	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	var input usecase.LeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}

	lead, err := h.CreateUC.Execute(r.Context(), session, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	var input usecase.LeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}

	lead, err := h.UpdateUC.Execute(r.Context(), session, chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// List é a vitrine: leads em new, com preço de buyer derivado na hora.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Repo.List(r.Context(), entity.LeadFilter{Status: entity.StatusNew})
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]marketplaceLead, 0, len(leads))
	for _, lead := range leads {
		buyerPrice, err := h.Pricing.BuyerPrice(lead.Price)
		if err != nil {
			continue // nunca expõe lead com preço inválido
		}
		out = append(out, marketplaceLead{
			ID:                 lead.ID,
			Type:               lead.Type,
			Location:           lead.Location,
			ZipCode:            lead.ZipCode,
			Description:        lead.Description,
			QualityRating:      lead.QualityRating,
			ConfirmationStatus: string(lead.ConfirmationStatus),
			Status:             string(lead.Status),
			BuyerPrice:         buyerPrice,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

// Mine lista os leads do próprio ator: seller vê os que criou, buyer os
// que comprou.
func (h *LeadHandler) Mine(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	filter := entity.LeadFilter{Status: entity.LeadStatus(r.URL.Query().Get("status"))}
	switch session.Role {
	case entity.RoleSeller:
		filter.SellerID = session.UserID
	case entity.RoleBuyer:
		filter.BuyerID = session.UserID
	}

	leads, err := h.Repo.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, leads)
}
