package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/brunovale/lead-exchange/internal/entity"
)

// AdminUseCase agrupa as ações do console: markPaid, refund, delete.
// Cada uma mapeia direto pra uma transição condicional.
type AdminUseCase struct {
	LeadRepo   entity.LeadRepositoryInterface
	RefundRepo entity.RefundRequestRepositoryInterface
}

func NewAdminUseCase(leadRepo entity.LeadRepositoryInterface, refundRepo entity.RefundRequestRepositoryInterface) *AdminUseCase {
	return &AdminUseCase{LeadRepo: leadRepo, RefundRepo: refundRepo}
}

func (uc *AdminUseCase) MarkPaid(ctx context.Context, session entity.Session, leadID string) (*entity.Lead, error) {
	if session.Role != entity.RoleAdmin {
		return nil, &GuardViolation{Code: "ADMIN_ONLY", Message: "only admins can mark leads as paid"}
	}

	if err := uc.LeadRepo.MarkPaid(ctx, leadID); err != nil {
		switch {
		case errors.Is(err, entity.ErrLeadNotFound):
			return nil, &GuardViolation{Code: "LEAD_NOT_FOUND", Message: "lead not found"}
		case errors.Is(err, entity.ErrStatusConflict):
			return nil, &GuardViolation{Code: "NOT_SOLD", Message: "only sold leads can be marked paid"}
		default:
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
		}
	}

	return uc.findLead(ctx, leadID)
}

// ApproveRefund resolve o request pending e vira o lead sold -> refunded
// na mesma transação. O vínculo do buyer não é limpo: refund é flip de
// status, comportamento preservado do sistema original.
func (uc *AdminUseCase) ApproveRefund(ctx context.Context, session entity.Session, requestID string) (*entity.RefundRequest, error) {
	if session.Role != entity.RoleAdmin {
		return nil, &GuardViolation{Code: "ADMIN_ONLY", Message: "only admins can approve refunds"}
	}

	if err := uc.RefundRepo.Approve(ctx, requestID, time.Now()); err != nil {
		switch {
		case errors.Is(err, entity.ErrRefundNotFound):
			return nil, &GuardViolation{Code: "REFUND_NOT_FOUND", Message: "no pending refund request with this id"}
		case errors.Is(err, entity.ErrStatusConflict):
			return nil, &ConflictError{Code: "LEAD_NOT_SOLD", Message: "lead is no longer in a refundable state"}
		default:
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
		}
	}

	return uc.RefundRepo.FindByID(ctx, requestID)
}

func (uc *AdminUseCase) DenyRefund(ctx context.Context, session entity.Session, requestID string) (*entity.RefundRequest, error) {
	if session.Role != entity.RoleAdmin {
		return nil, &GuardViolation{Code: "ADMIN_ONLY", Message: "only admins can deny refunds"}
	}

	if err := uc.RefundRepo.Deny(ctx, requestID, time.Now()); err != nil {
		if errors.Is(err, entity.ErrRefundNotFound) {
			return nil, &GuardViolation{Code: "REFUND_NOT_FOUND", Message: "no pending refund request with this id"}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	return uc.RefundRepo.FindByID(ctx, requestID)
}

// DeleteLead aplica o soft-delete (erased). Seller dono ou admin; leads
// paid nunca. Deletar lead já erased é no-op com sucesso — o único caso
// silencioso permitido no state machine.
func (uc *AdminUseCase) DeleteLead(ctx context.Context, session entity.Session, leadID string) (*entity.Lead, error) {
	lead, err := uc.findLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	if session.Role != entity.RoleAdmin && !(session.Role == entity.RoleSeller && lead.OwnedBy(session.UserID)) {
		return nil, &GuardViolation{
			Code:    "NOT_OWNER",
			Message: "only the owning seller or an admin can delete a lead",
		}
	}

	if lead.Status == entity.StatusErased {
		return lead, nil // idempotente
	}

	if !entity.CanTransition(lead.Status, entity.StatusErased) {
		return nil, &GuardViolation{Code: "LEAD_PAID", Message: "paid leads cannot be deleted"}
	}

	if err := uc.LeadRepo.Erase(ctx, leadID); err != nil {
		switch {
		case errors.Is(err, entity.ErrStatusConflict):
			// O status mudou entre o FindByID e o UPDATE.
			return nil, &GuardViolation{Code: "LEAD_PAID", Message: "paid leads cannot be deleted"}
		default:
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
		}
	}

	return uc.findLead(ctx, leadID)
}

func (uc *AdminUseCase) findLead(ctx context.Context, leadID string) (*entity.Lead, error) {
	lead, err := uc.LeadRepo.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &GuardViolation{Code: "LEAD_NOT_FOUND", Message: "lead not found"}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	return lead, nil
}
