package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/brunovale/lead-exchange/internal/entity"
	"github.com/google/uuid"
)

// ConfirmationWindow: prazo pro seller conseguir contato num lead
// unconfirmed antes do buyer poder pedir refund.
const ConfirmationWindow = 48 * time.Hour

// Remaining é o countdown exibido pro buyer, em componentes inteiros,
// nunca negativos.
type Remaining struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// ConfirmationTimeRemaining calcula quanto falta da janela de 48h. Retorna
// nil depois que a janela esgota (o display mostra "Expired"). Exatamente
// no limite retorna {0, 0}.
func ConfirmationTimeRemaining(purchasedAt, now time.Time) *Remaining {
	left := purchasedAt.Add(ConfirmationWindow).Sub(now)
	if left < 0 {
		return nil
	}
	mins := int(left / time.Minute) // floor em minutos inteiros
	return &Remaining{
		Hours:   mins / 60,
		Minutes: mins % 60,
	}
}

// RefundEligible verifica se o buyer pode ABRIR um request agora. Aprovação
// em si é sempre decisão de admin. O fato "não consegui contato" /
// "cliente não apareceu" é evidência afirmada pelo requester, não derivada.
func RefundEligible(lead *entity.Lead, now time.Time) error {
	if lead.Status != entity.StatusSold {
		return &GuardViolation{
			Code:    "NOT_REFUNDABLE",
			Message: "refunds can only be requested for sold leads",
		}
	}
	if lead.PurchasedAt == nil {
		return &TechnicalError{Code: "DATA_ERROR", Message: "sold lead without purchased_at"}
	}

	switch lead.ConfirmationStatus {
	case entity.ConfirmationUnconfirmed:
		if now.Before(lead.PurchasedAt.Add(ConfirmationWindow)) {
			return &GuardViolation{
				Code:    "WINDOW_OPEN",
				Message: "the 48h contact window has not elapsed yet",
			}
		}
	case entity.ConfirmationConfirmed:
		if lead.AppointmentAt == nil || now.Before(*lead.AppointmentAt) {
			return &GuardViolation{
				Code:    "APPOINTMENT_PENDING",
				Message: "the scheduled appointment has not passed yet",
			}
		}
	}

	return nil
}

type RequestRefundUseCase struct {
	LeadRepo   entity.LeadRepositoryInterface
	RefundRepo entity.RefundRequestRepositoryInterface

	// Now é injetável pros testes de janela; default time.Now.
	Now func() time.Time
}

func NewRequestRefundUseCase(leadRepo entity.LeadRepositoryInterface, refundRepo entity.RefundRequestRepositoryInterface) *RequestRefundUseCase {
	return &RequestRefundUseCase{
		LeadRepo:   leadRepo,
		RefundRepo: refundRepo,
		Now:        time.Now,
	}
}

func (uc *RequestRefundUseCase) Execute(ctx context.Context, session entity.Session, leadID, reason string) (*entity.RefundRequest, error) {
	if session.Role != entity.RoleBuyer {
		return nil, &GuardViolation{
			Code:    "BUYER_ONLY",
			Message: "only buyers can request refunds",
		}
	}

	lead, err := uc.LeadRepo.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &GuardViolation{Code: "LEAD_NOT_FOUND", Message: "lead not found"}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	if lead.BuyerID != session.UserID {
		return nil, &GuardViolation{
			Code:    "NOT_BUYER",
			Message: "only the buyer of this lead can request a refund",
		}
	}

	if err := RefundEligible(lead, uc.Now()); err != nil {
		return nil, err
	}

	req := &entity.RefundRequest{
		ID:          uuid.New().String(),
		LeadID:      leadID,
		RequesterID: session.UserID,
		Reason:      reason,
		Status:      entity.RefundPending,
		CreatedAt:   uc.Now(),
	}

	// A corrida entre dois submits duplicados fecha no banco (unique
	// parcial), não num check prévio de cliente.
	if err := uc.RefundRepo.Create(ctx, req); err != nil {
		if errors.Is(err, entity.ErrPendingRefundExists) {
			return nil, &ConflictError{
				Code:    "REFUND_ALREADY_PENDING",
				Message: "a refund request is already pending for this lead",
			}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	return req, nil
}
