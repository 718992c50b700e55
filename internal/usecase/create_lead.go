package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/brunovale/lead-exchange/internal/entity"
	"github.com/brunovale/lead-exchange/internal/infra/queue"
	"github.com/google/uuid"
)

type CreateLeadUseCase struct {
	Repo     entity.LeadRepositoryInterface
	Producer NotificationPublisher
}

func NewCreateLeadUseCase(repo entity.LeadRepositoryInterface, producer NotificationPublisher) *CreateLeadUseCase {
	return &CreateLeadUseCase{Repo: repo, Producer: producer}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, session entity.Session, input LeadInput) (*entity.Lead, error) {
	if session.Role != entity.RoleSeller {
		return nil, &GuardViolation{
			Code:    "SELLER_ONLY",
			Message: "only sellers can create leads",
		}
	}

	if errs := ValidateLeadInput(input); len(errs) > 0 {
		return nil, &ValidationFailure{Errors: errs}
	}

	confirmation := entity.ConfirmationStatus(input.ConfirmationStatus)
	if confirmation == "" {
		confirmation = entity.ConfirmationUnconfirmed
	}

	lead := &entity.Lead{
		ID:          uuid.New().String(),
		Type:        input.Type,
		Location:    input.Location,
		ZipCode:     input.ZipCode,
		Description: input.Description,
		Address:     input.Address,

		ContactName:  input.ContactName,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,

		Price:         *input.Price,
		QualityRating: input.QualityRating,

		AppointmentDate:    input.AppointmentDate,
		AppointmentSlot:    input.AppointmentSlot,
		AppointmentAt:      parseAppointment(input.AppointmentDate, input.AppointmentSlot),
		ConfirmationStatus: confirmation,

		Status:     entity.StatusNew,
		SellerID:   session.UserID,
		SellerName: session.Name,

		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist lead: " + err.Error(),
		}
	}

	// Best-effort: falha de notificação nunca desfaz o create.
	if uc.Producer != nil {
		if err := uc.Producer.PublishNotification(ctx, queue.NotificationPayload{
			LeadID:         lead.ID,
			EventKind:      queue.EventNewLead,
			RecipientEmail: session.UserID, // seleção de destinatário fica com o dispatcher
			RecipientName:  session.Name,
			LeadType:       lead.Type,
			Location:       lead.Location,
		}); err != nil {
			log.Printf("⚠️ Erro fila (new-lead %s): %v", lead.ID, err)
		}
	}

	return lead, nil
}

// parseAppointment tenta derivar o instante da visita a partir do par
// data+slot ("2026-09-04", "14:00-16:00"). Texto livre que não parseia
// fica verbatim nos campos de exibição e AppointmentAt nil.
func parseAppointment(date, slot string) *time.Time {
	if date == "" {
		return nil
	}
	start := slot
	if i := strings.IndexByte(slot, '-'); i > 0 {
		start = slot[:i]
	}
	layouts := []string{"2006-01-02 15:04", "2006-01-02 15"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, date+" "+start); err == nil {
			return &t
		}
	}
	if t, err := time.Parse("2006-01-02", date); err == nil {
		return &t
	}
	return nil
}
