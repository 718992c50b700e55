package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/brunovale/lead-exchange/internal/entity"
	"github.com/brunovale/lead-exchange/internal/infra/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateLeadPersistsAndPublishes(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	producer := new(MockNotificationPublisher)
	leadRepo.On("Create", ctx, mock.AnythingOfType("*entity.Lead")).Return(nil)
	producer.On("PublishNotification", ctx, mock.MatchedBy(func(p queue.NotificationPayload) bool {
		return p.EventKind == queue.EventNewLead && p.LeadType == "roofing"
	})).Return(nil)

	uc := NewCreateLeadUseCase(leadRepo, producer)
	lead, err := uc.Execute(ctx, sellerSession(), validInput())

	assert.NoError(t, err)
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, entity.StatusNew, lead.Status)
	assert.Equal(t, "seller-1", lead.SellerID)
	assert.Equal(t, 49.99, lead.Price)
	producer.AssertNumberOfCalls(t, "PublishNotification", 1)
}

func TestCreateLeadOnlySellers(t *testing.T) {
	uc := NewCreateLeadUseCase(new(MockLeadRepository), new(MockNotificationPublisher))

	_, err := uc.Execute(context.Background(), buyerSession(), validInput())
	assert.True(t, IsGuardViolation(err))
}

func TestCreateLeadPublishFailureDoesNotUndoCreate(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	producer := new(MockNotificationPublisher)
	leadRepo.On("Create", ctx, mock.AnythingOfType("*entity.Lead")).Return(nil)
	producer.On("PublishNotification", ctx, mock.Anything).Return(errors.New("broker down"))

	uc := NewCreateLeadUseCase(leadRepo, producer)
	lead, err := uc.Execute(ctx, sellerSession(), validInput())

	assert.NoError(t, err)
	assert.NotNil(t, lead)
}

func TestCreateConfirmedLeadDerivesAppointmentInstant(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	leadRepo.On("Create", ctx, mock.AnythingOfType("*entity.Lead")).Return(nil)

	input := validInput()
	input.ConfirmationStatus = "confirmed"
	input.AppointmentDate = "2026-09-04"
	input.AppointmentSlot = "14:00-16:00"

	uc := NewCreateLeadUseCase(leadRepo, nil)
	lead, err := uc.Execute(ctx, sellerSession(), input)

	assert.NoError(t, err)
	// Os campos de exibição ficam verbatim; o instante vem do início do slot.
	assert.Equal(t, "14:00-16:00", lead.AppointmentSlot)
	if assert.NotNil(t, lead.AppointmentAt) {
		assert.Equal(t, 14, lead.AppointmentAt.Hour())
		assert.Equal(t, 4, lead.AppointmentAt.Day())
	}
}

func TestUpdateLeadOnlyWhileNew(t *testing.T) {
	ctx := context.Background()

	sold := newLead()
	sold.Status = entity.StatusSold

	leadRepo := new(MockLeadRepository)
	leadRepo.On("FindByID", ctx, "lead-1").Return(sold, nil)

	uc := NewUpdateLeadUseCase(leadRepo)
	_, err := uc.Execute(ctx, sellerSession(), "lead-1", validInput())

	assert.True(t, IsGuardViolation(err))
	leadRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateLeadOnlyByOwner(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	leadRepo.On("FindByID", ctx, "lead-1").Return(newLead(), nil)

	other := entity.Session{UserID: "seller-9", Name: "Outro", Role: entity.RoleSeller}
	uc := NewUpdateLeadUseCase(leadRepo)
	_, err := uc.Execute(ctx, other, "lead-1", validInput())

	assert.True(t, IsGuardViolation(err))
}

func TestReactivateErasedLead(t *testing.T) {
	ctx := context.Background()

	erased := newLead()
	erased.Status = entity.StatusErased
	erased.AppointmentWarned = true

	leadRepo := new(MockLeadRepository)
	leadRepo.On("FindByID", ctx, "lead-1").Return(erased, nil)
	leadRepo.On("Update", ctx, mock.AnythingOfType("*entity.Lead")).Return(nil)

	uc := NewUpdateLeadUseCase(leadRepo)
	lead, err := uc.Execute(ctx, sellerSession(), "lead-1", validInput())

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusNew, lead.Status)
	assert.False(t, lead.AppointmentWarned)
}

func TestReactivateConfirmedLeadNeedsFreshAppointment(t *testing.T) {
	ctx := context.Background()

	erased := newLead()
	erased.Status = entity.StatusErased
	erased.ConfirmationStatus = entity.ConfirmationConfirmed

	leadRepo := new(MockLeadRepository)
	leadRepo.On("FindByID", ctx, "lead-1").Return(erased, nil)

	uc := NewUpdateLeadUseCase(leadRepo)

	input := validInput()
	input.ConfirmationStatus = "confirmed"
	_, err := uc.Execute(ctx, sellerSession(), "lead-1", input)

	var vf *ValidationFailure
	assert.True(t, errors.As(err, &vf))
	leadRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	// Com data+slot reentrados, a reativação passa.
	leadRepo.On("Update", ctx, mock.AnythingOfType("*entity.Lead")).Return(nil)
	input.AppointmentDate = "2026-09-10"
	input.AppointmentSlot = "09:00-11:00"
	lead, err := uc.Execute(ctx, sellerSession(), "lead-1", input)

	assert.NoError(t, err)
	assert.Equal(t, "2026-09-10", lead.AppointmentDate)
	assert.Equal(t, entity.StatusNew, lead.Status)
}
