package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/brunovale/lead-exchange/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func soldLead(purchasedAt time.Time) *entity.Lead {
	return &entity.Lead{
		ID:                 "lead-1",
		Type:               "roofing",
		Price:              49.99,
		Status:             entity.StatusSold,
		ConfirmationStatus: entity.ConfirmationUnconfirmed,
		SellerID:           "seller-1",
		BuyerID:            "buyer-1",
		BuyerName:          "Carlos Lima",
		PurchasedAt:        &purchasedAt,
	}
}

func TestConfirmationTimeRemaining(t *testing.T) {
	purchased := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	// Logo após a compra: 47h59m.
	r := ConfirmationTimeRemaining(purchased, purchased.Add(1*time.Minute))
	assert.NotNil(t, r)
	assert.Equal(t, 47, r.Hours)
	assert.Equal(t, 59, r.Minutes)

	// Exatamente no limite: {0, 0}, ainda não expirado.
	r = ConfirmationTimeRemaining(purchased, purchased.Add(48*time.Hour))
	assert.NotNil(t, r)
	assert.Equal(t, 0, r.Hours)
	assert.Equal(t, 0, r.Minutes)

	// Um minuto depois do limite: nil ("Expired" no display).
	r = ConfirmationTimeRemaining(purchased, purchased.Add(48*time.Hour+1*time.Minute))
	assert.Nil(t, r)

	// Floor em minutos inteiros, nunca componente negativo.
	r = ConfirmationTimeRemaining(purchased, purchased.Add(47*time.Hour+30*time.Second))
	assert.NotNil(t, r)
	assert.Equal(t, 0, r.Hours)
	assert.Equal(t, 59, r.Minutes)
}

func TestRequestRefundUnconfirmedAfterWindow(t *testing.T) {
	ctx := context.Background()
	purchased := time.Now().Add(-49 * time.Hour)

	leadRepo := new(MockLeadRepository)
	refundRepo := new(MockRefundRepository)
	leadRepo.On("FindByID", ctx, "lead-1").Return(soldLead(purchased), nil)
	refundRepo.On("Create", ctx, mock.Anything).Return(nil)

	uc := NewRequestRefundUseCase(leadRepo, refundRepo)
	req, err := uc.Execute(ctx, buyerSession(), "lead-1", "no contact after 48h")

	assert.NoError(t, err)
	assert.Equal(t, entity.RefundPending, req.Status)
	assert.Equal(t, "lead-1", req.LeadID)
	refundRepo.AssertCalled(t, "Create", ctx, mock.Anything)
}

func TestRequestRefundUnconfirmedInsideWindow(t *testing.T) {
	ctx := context.Background()
	purchased := time.Now().Add(-2 * time.Hour)

	leadRepo := new(MockLeadRepository)
	refundRepo := new(MockRefundRepository)
	leadRepo.On("FindByID", ctx, "lead-1").Return(soldLead(purchased), nil)

	uc := NewRequestRefundUseCase(leadRepo, refundRepo)
	_, err := uc.Execute(ctx, buyerSession(), "lead-1", "too soon")

	assert.Error(t, err)
	assert.True(t, IsGuardViolation(err))
	refundRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRequestRefundConfirmedBeforeAppointment(t *testing.T) {
	ctx := context.Background()
	purchased := time.Now().Add(-72 * time.Hour)
	appt := time.Now().Add(24 * time.Hour)

	lead := soldLead(purchased)
	lead.ConfirmationStatus = entity.ConfirmationConfirmed
	lead.AppointmentAt = &appt

	leadRepo := new(MockLeadRepository)
	refundRepo := new(MockRefundRepository)
	leadRepo.On("FindByID", ctx, "lead-1").Return(lead, nil)

	uc := NewRequestRefundUseCase(leadRepo, refundRepo)
	_, err := uc.Execute(ctx, buyerSession(), "lead-1", "impatient")

	assert.True(t, IsGuardViolation(err))

	// Visita já passou: request liberado.
	past := time.Now().Add(-1 * time.Hour)
	lead.AppointmentAt = &past
	refundRepo.On("Create", ctx, mock.Anything).Return(nil)
	_, err = uc.Execute(ctx, buyerSession(), "lead-1", "customer never showed")
	assert.NoError(t, err)
}

func TestRequestRefundDuplicatePendingConflicts(t *testing.T) {
	ctx := context.Background()
	purchased := time.Now().Add(-49 * time.Hour)

	leadRepo := new(MockLeadRepository)
	refundRepo := new(MockRefundRepository)
	leadRepo.On("FindByID", ctx, "lead-1").Return(soldLead(purchased), nil)
	// A unique parcial do banco responde, não um check de cliente.
	refundRepo.On("Create", ctx, mock.Anything).Return(entity.ErrPendingRefundExists)

	uc := NewRequestRefundUseCase(leadRepo, refundRepo)
	_, err := uc.Execute(ctx, buyerSession(), "lead-1", "dup")

	assert.True(t, IsConflictError(err))
}

func TestRequestRefundOnlyLeadBuyer(t *testing.T) {
	ctx := context.Background()
	purchased := time.Now().Add(-49 * time.Hour)

	leadRepo := new(MockLeadRepository)
	refundRepo := new(MockRefundRepository)
	leadRepo.On("FindByID", ctx, "lead-1").Return(soldLead(purchased), nil)

	uc := NewRequestRefundUseCase(leadRepo, refundRepo)

	otherBuyer := entity.Session{UserID: "buyer-999", Role: entity.RoleBuyer}
	_, err := uc.Execute(ctx, otherBuyer, "lead-1", "not mine")
	assert.True(t, IsGuardViolation(err))

	_, err = uc.Execute(ctx, sellerSession(), "lead-1", "wrong role")
	assert.True(t, IsGuardViolation(err))
}

func TestRequestRefundRejectedAfterRefund(t *testing.T) {
	ctx := context.Background()
	purchased := time.Now().Add(-80 * time.Hour)

	lead := soldLead(purchased)
	lead.Status = entity.StatusRefunded // não é mais sold; novo request não abre

	leadRepo := new(MockLeadRepository)
	refundRepo := new(MockRefundRepository)
	leadRepo.On("FindByID", ctx, "lead-1").Return(lead, nil)

	uc := NewRequestRefundUseCase(leadRepo, refundRepo)
	_, err := uc.Execute(ctx, buyerSession(), "lead-1", "again")

	assert.True(t, IsGuardViolation(err))
	refundRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
