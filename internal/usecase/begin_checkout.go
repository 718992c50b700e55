package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/brunovale/lead-exchange/internal/entity"
	"github.com/brunovale/lead-exchange/internal/infra/integration/checkout"
	"github.com/brunovale/lead-exchange/internal/pricing"
)

// BeginCheckoutUseCase reserva o lead (new -> pending) e abre a sessão de
// checkout. A reserva é um UPDATE condicional no banco: dois buyers ao
// mesmo tempo, um ganha, o outro leva ConflictError.
type BeginCheckoutUseCase struct {
	Repo    entity.LeadRepositoryInterface
	Gateway CheckoutGateway
	Pricing pricing.Config

	SuccessURL string
	CancelURL  string
}

func NewBeginCheckoutUseCase(repo entity.LeadRepositoryInterface, gateway CheckoutGateway, cfg pricing.Config, successURL, cancelURL string) *BeginCheckoutUseCase {
	return &BeginCheckoutUseCase{
		Repo:       repo,
		Gateway:    gateway,
		Pricing:    cfg,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
	}
}

func (uc *BeginCheckoutUseCase) Execute(ctx context.Context, session entity.Session, leadID, buyerEmail string) (*BeginCheckoutOutput, error) {
	if session.Role != entity.RoleBuyer {
		return nil, &GuardViolation{
			Code:    "BUYER_ONLY",
			Message: "only buyers can purchase leads",
		}
	}

	lead, err := uc.Repo.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &GuardViolation{Code: "LEAD_NOT_FOUND", Message: "lead not found"}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	if lead.Sold() {
		return nil, &GuardViolation{Code: "LEAD_ALREADY_SOLD", Message: "lead already sold"}
	}
	if !entity.CanTransition(lead.Status, entity.StatusPending) {
		return nil, &GuardViolation{
			Code:    "LEAD_UNAVAILABLE",
			Message: "lead cannot be purchased while " + string(lead.Status),
		}
	}

	buyerPrice, err := uc.Pricing.BuyerPrice(lead.Price)
	if err != nil {
		return nil, &TechnicalError{Code: "PRICE_ERROR", Message: err.Error()}
	}

	// Reserva primeiro, gravando o dono. Só quem segura o pending fala com
	// o gateway, e só o reserved_by vira buyer na conversão.
	if err := uc.Repo.Reserve(ctx, leadID, session.UserID, session.Name); err != nil {
		if errors.Is(err, entity.ErrStatusConflict) {
			return nil, &ConflictError{
				Code:    "LEAD_JUST_PURCHASED",
				Message: "this lead was just purchased or reserved by another buyer",
			}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	sess, err := uc.Gateway.CreateSession(ctx, checkout.SessionInput{
		LeadID:     leadID,
		Amount:     buyerPrice,
		BuyerID:    session.UserID,
		BuyerEmail: buyerEmail,
		SuccessURL: uc.SuccessURL,
		CancelURL:  uc.CancelURL,
	})
	if err != nil {
		// Gateway inconclusivo: solta a reserva e devolve falha de
		// collaborator. O estado do lead NÃO avançou.
		if relErr := uc.Repo.Release(ctx, leadID); relErr != nil {
			log.Printf("⚠️ Falha ao liberar reserva %s: %v", leadID, relErr)
		}
		return nil, &CollaboratorFailure{
			Code:    "CHECKOUT_UNAVAILABLE",
			Message: "checkout provider did not respond; the lead was not charged",
			Err:     err,
		}
	}

	return &BeginCheckoutOutput{
		RedirectURL: sess.RedirectURL,
		BuyerPrice:  buyerPrice,
	}, nil
}

// Cancel libera a reserva quando o buyer abandona o checkout. Só quem
// reservou (ou um admin) pode soltar: um rival não derruba um pending
// alheio no meio do pagamento.
func (uc *BeginCheckoutUseCase) Cancel(ctx context.Context, session entity.Session, leadID string) error {
	lead, err := uc.Repo.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return &GuardViolation{Code: "LEAD_NOT_FOUND", Message: "lead not found"}
		}
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	if lead.Status != entity.StatusPending {
		// Já saiu de pending (venda completou ou outra liberação).
		return nil
	}

	if session.Role != entity.RoleAdmin && lead.ReservedBy != session.UserID {
		return &GuardViolation{
			Code:    "NOT_RESERVER",
			Message: "only the reserving buyer can cancel this checkout",
		}
	}

	if err := uc.Repo.Release(ctx, leadID); err != nil {
		if errors.Is(err, entity.ErrStatusConflict) {
			return nil
		}
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	return nil
}
