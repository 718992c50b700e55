package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/brunovale/lead-exchange/internal/entity"
	"github.com/brunovale/lead-exchange/internal/infra/queue"
	"github.com/brunovale/lead-exchange/internal/pricing"
)

// CompleteSaleUseCase consome o sinal de confirmação do collaborator de
// pagamento e aplica pending -> sold. Idempotente por lead+buyer: o
// webhook pode chegar duplicado.
type CompleteSaleUseCase struct {
	Repo     entity.LeadRepositoryInterface
	Producer NotificationPublisher
	Pricing  pricing.Config
}

func NewCompleteSaleUseCase(repo entity.LeadRepositoryInterface, producer NotificationPublisher, cfg pricing.Config) *CompleteSaleUseCase {
	return &CompleteSaleUseCase{Repo: repo, Producer: producer, Pricing: cfg}
}

func (uc *CompleteSaleUseCase) Execute(ctx context.Context, confirmation PaymentConfirmation) (*CompleteSaleOutput, error) {
	if confirmation.LeadID == "" {
		return nil, &ValidationFailure{Errors: []ValidationError{{Field: "lead_id", Message: "is required"}}}
	}

	if !confirmation.Success {
		// Checkout abandonado/cancelado: devolve pending -> new.
		if err := uc.Repo.Release(ctx, confirmation.LeadID); err != nil && !errors.Is(err, entity.ErrStatusConflict) {
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
		}
		lead, err := uc.Repo.FindByID(ctx, confirmation.LeadID)
		if err != nil {
			if errors.Is(err, entity.ErrLeadNotFound) {
				// Referência que o provedor inventou (ou lead sumiu):
				// retry nunca vai resolver, então não vira 500.
				return nil, &GuardViolation{Code: "LEAD_NOT_FOUND", Message: "lead not found"}
			}
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
		}
		return &CompleteSaleOutput{Lead: lead}, nil
	}

	// O buyer da venda é o reserved_by gravado na reserva; o corpo do
	// webhook só identifica o lead.
	now := time.Now()
	err := uc.Repo.MarkSold(ctx, confirmation.LeadID, now)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &GuardViolation{Code: "LEAD_NOT_FOUND", Message: "lead not found"}
		}
		if !errors.Is(err, entity.ErrStatusConflict) {
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
		}

		// O UPDATE condicional não pegou. Ou é retry do mesmo evento
		// (idempotente, sucesso sem re-notificar), ou a reserva caiu antes
		// do pagamento chegar.
		lead, findErr := uc.Repo.FindByID(ctx, confirmation.LeadID)
		if findErr != nil {
			if errors.Is(findErr, entity.ErrLeadNotFound) {
				return nil, &GuardViolation{Code: "LEAD_NOT_FOUND", Message: "lead not found"}
			}
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: findErr.Error()}
		}
		if lead.Sold() {
			return &CompleteSaleOutput{Lead: lead}, nil
		}
		return nil, &ConflictError{
			Code:    "RESERVATION_LOST",
			Message: "the reservation for this lead no longer holds",
		}
	}

	lead, err := uc.Repo.FindByID(ctx, confirmation.LeadID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	out := &CompleteSaleOutput{Lead: lead}

	// Notificação é best-effort: a venda já commitou. Falha vira
	// degraded-success ("purchase succeeded, confirmation email may be
	// delayed"), nunca rollback.
	buyerPrice, _ := uc.Pricing.BuyerPrice(lead.Price)
	if err := uc.Producer.PublishNotification(ctx, queue.NotificationPayload{
		LeadID:         lead.ID,
		EventKind:      queue.EventLeadSold,
		RecipientEmail: lead.SellerID,
		RecipientName:  lead.SellerName,
		LeadType:       lead.Type,
		Location:       lead.Location,
		BuyerPrice:     buyerPrice,
	}); err != nil {
		log.Printf("⚠️ Erro fila (lead-sold %s): %v", lead.ID, err)
		out.EmailDelayed = true
	}

	return out, nil
}
