package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/brunovale/lead-exchange/internal/entity"
)

// UpdateLeadUseCase cobre edição e reativação. Um lead erased editado pelo
// dono volta pra new; se estava confirmado, exige reentrada de data+slot.
type UpdateLeadUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewUpdateLeadUseCase(repo entity.LeadRepositoryInterface) *UpdateLeadUseCase {
	return &UpdateLeadUseCase{Repo: repo}
}

func (uc *UpdateLeadUseCase) Execute(ctx context.Context, session entity.Session, leadID string, input LeadInput) (*entity.Lead, error) {
	lead, err := uc.Repo.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &GuardViolation{Code: "LEAD_NOT_FOUND", Message: "lead not found"}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	if !lead.OwnedBy(session.UserID) || session.Role != entity.RoleSeller {
		return nil, &GuardViolation{
			Code:    "NOT_OWNER",
			Message: "only the owning seller can edit a lead",
		}
	}

	reactivating := lead.Status == entity.StatusErased
	if !reactivating && lead.Status != entity.StatusNew {
		return nil, &GuardViolation{
			Code:    "LEAD_LOCKED",
			Message: "lead cannot be edited while " + string(lead.Status),
		}
	}

	if errs := ValidateLeadInput(input); len(errs) > 0 {
		return nil, &ValidationFailure{Errors: errs}
	}

	confirmation := entity.ConfirmationStatus(input.ConfirmationStatus)
	if confirmation == "" {
		confirmation = lead.ConfirmationStatus
	}

	// Reativar um lead confirmado exige horário novo — o antigo já passou
	// ou deixou de valer quando o lead saiu do ar.
	if reactivating && confirmation == entity.ConfirmationConfirmed {
		if strings.TrimSpace(input.AppointmentDate) == "" || strings.TrimSpace(input.AppointmentSlot) == "" {
			return nil, &ValidationFailure{Errors: []ValidationError{
				{Field: "appointment_date", Message: "re-entry required to reactivate a confirmed lead"},
				{Field: "appointment_slot", Message: "re-entry required to reactivate a confirmed lead"},
			}}
		}
	}

	lead.Type = input.Type
	lead.Location = input.Location
	lead.ZipCode = input.ZipCode
	lead.Description = input.Description
	lead.Address = input.Address
	lead.ContactName = input.ContactName
	lead.ContactEmail = input.ContactEmail
	lead.ContactPhone = input.ContactPhone
	lead.Price = *input.Price
	lead.QualityRating = input.QualityRating
	lead.AppointmentDate = input.AppointmentDate
	lead.AppointmentSlot = input.AppointmentSlot
	lead.AppointmentAt = parseAppointment(input.AppointmentDate, input.AppointmentSlot)
	lead.ConfirmationStatus = confirmation
	lead.UpdatedAt = time.Now()

	if reactivating {
		lead.Status = entity.StatusNew
		lead.AppointmentWarned = false
	}

	if err := uc.Repo.Update(ctx, lead); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	return lead, nil
}
