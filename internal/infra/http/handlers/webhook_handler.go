package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/brunovale/lead-exchange/internal/infra/http/middleware"
	"github.com/brunovale/lead-exchange/internal/usecase"
)

// WebhookHandler consome o sinal do collaborator de pagamento. É a ÚNICA
// fonte que avança pending -> sold; o front nunca escreve esse status.
type WebhookHandler struct {
	CompleteSaleUC *usecase.CompleteSaleUseCase
	Secret         string
}

func NewWebhookHandler(uc *usecase.CompleteSaleUseCase, secret string) *WebhookHandler {
	return &WebhookHandler{CompleteSaleUC: uc, Secret: secret}
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.Secret != "" && r.Header.Get("X-Webhook-Token") != h.Secret {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var event struct {
		Event   string `json:"event"`
		Payment struct {
			// externalReference da sessão: o id do lead que abrimos.
			LeadID string `json:"externalReference"`
		} `json:"payment"`
	}

	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Bad JSON", 400)
		return
	}

	var confirmation usecase.PaymentConfirmation
	switch event.Event {
	case "PAYMENT_RECEIVED", "PAYMENT_CONFIRMED":
		confirmation = usecase.PaymentConfirmation{
			Success: true,
			LeadID:  event.Payment.LeadID,
		}
	case "PAYMENT_CANCELED", "SESSION_EXPIRED":
		confirmation = usecase.PaymentConfirmation{
			Success: false,
			LeadID:  event.Payment.LeadID,
		}
	default:
		// Evento que não nos interessa: 200 pro provedor não re-entregar.
		w.WriteHeader(200)
		return
	}

	output, err := h.CompleteSaleUC.Execute(r.Context(), confirmation)
	if err != nil {
		if usecase.IsConflictError(err) || usecase.IsGuardViolation(err) || usecase.IsValidationFailure(err) {
			// Retry do provedor não vai mudar o resultado.
			log.Printf("⚠️ Webhook descartado (lead=%s): %v", event.Payment.LeadID, err)
			w.WriteHeader(200)
			return
		}
		log.Printf("❌ Webhook falhou (lead=%s): %v", event.Payment.LeadID, err)
		w.WriteHeader(500)
		return
	}

	if confirmation.Success {
		middleware.RecordLeadSold()
		if output.EmailDelayed {
			middleware.RecordNotificationError("lead-sold")
		}
	}

	w.WriteHeader(200)
}
