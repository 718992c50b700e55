package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/brunovale/lead-exchange/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMarkPaidOnlyAdmins(t *testing.T) {
	uc := NewAdminUseCase(new(MockLeadRepository), new(MockRefundRepository))

	_, err := uc.MarkPaid(context.Background(), sellerSession(), "lead-1")
	assert.True(t, IsGuardViolation(err))
}

func TestMarkPaidRequiresSoldLead(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	leadRepo.On("MarkPaid", ctx, "lead-1").Return(entity.ErrStatusConflict)

	uc := NewAdminUseCase(leadRepo, new(MockRefundRepository))
	_, err := uc.MarkPaid(ctx, adminSession(), "lead-1")

	assert.True(t, IsGuardViolation(err))
	assert.Contains(t, err.Error(), "only sold leads")
}

func TestMarkPaidSoldLead(t *testing.T) {
	ctx := context.Background()

	paid := newLead()
	paid.Status = entity.StatusPaid
	paid.BuyerID = "buyer-1"

	leadRepo := new(MockLeadRepository)
	leadRepo.On("MarkPaid", ctx, "lead-1").Return(nil)
	leadRepo.On("FindByID", ctx, "lead-1").Return(paid, nil)

	uc := NewAdminUseCase(leadRepo, new(MockRefundRepository))
	lead, err := uc.MarkPaid(ctx, adminSession(), "lead-1")

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, lead.Status)
	// Paid é terminal: o vínculo do buyer permanece.
	assert.Equal(t, "buyer-1", lead.BuyerID)
}

func TestDeleteLeadByOwningSeller(t *testing.T) {
	ctx := context.Background()

	lead := newLead()
	leadRepo := new(MockLeadRepository)
	leadRepo.On("FindByID", ctx, "lead-1").Return(lead, nil)
	leadRepo.On("Erase", ctx, "lead-1").Return(nil)

	uc := NewAdminUseCase(leadRepo, new(MockRefundRepository))
	_, err := uc.DeleteLead(ctx, sellerSession(), "lead-1")

	assert.NoError(t, err)
	leadRepo.AssertCalled(t, "Erase", ctx, "lead-1")
}

func TestDeleteLeadDeniedForStrangers(t *testing.T) {
	ctx := context.Background()

	lead := newLead() // seller-1
	other := entity.Session{UserID: "seller-9", Name: "Outro", Role: entity.RoleSeller}

	leadRepo := new(MockLeadRepository)
	leadRepo.On("FindByID", ctx, "lead-1").Return(lead, nil)

	uc := NewAdminUseCase(leadRepo, new(MockRefundRepository))
	_, err := uc.DeleteLead(ctx, other, "lead-1")

	assert.True(t, IsGuardViolation(err))
	leadRepo.AssertNotCalled(t, "Erase", mock.Anything, mock.Anything)
}

func TestDeleteErasedLeadIsNoOp(t *testing.T) {
	ctx := context.Background()

	erased := newLead()
	erased.Status = entity.StatusErased

	leadRepo := new(MockLeadRepository)
	leadRepo.On("FindByID", ctx, "lead-1").Return(erased, nil)

	uc := NewAdminUseCase(leadRepo, new(MockRefundRepository))

	// Duas deleções seguidas: ambas sucessos, nenhum UPDATE extra.
	for i := 0; i < 2; i++ {
		lead, err := uc.DeleteLead(ctx, adminSession(), "lead-1")
		assert.NoError(t, err)
		assert.Equal(t, entity.StatusErased, lead.Status)
	}
	leadRepo.AssertNotCalled(t, "Erase", mock.Anything, mock.Anything)
}

func TestDeletePaidLeadFails(t *testing.T) {
	ctx := context.Background()

	paid := newLead()
	paid.Status = entity.StatusPaid

	leadRepo := new(MockLeadRepository)
	leadRepo.On("FindByID", ctx, "lead-1").Return(paid, nil)

	uc := NewAdminUseCase(leadRepo, new(MockRefundRepository))
	_, err := uc.DeleteLead(ctx, adminSession(), "lead-1")

	// A tabela de transições barra paid -> erased antes de qualquer UPDATE.
	assert.True(t, IsGuardViolation(err))
	assert.Contains(t, err.Error(), "paid leads cannot be deleted")
	leadRepo.AssertNotCalled(t, "Erase", mock.Anything, mock.Anything)
}

func TestApproveRefundResolvesRequest(t *testing.T) {
	ctx := context.Background()

	resolved := &entity.RefundRequest{
		ID:     "req-1",
		LeadID: "lead-1",
		Status: entity.RefundApproved,
	}

	refundRepo := new(MockRefundRepository)
	refundRepo.On("Approve", ctx, "req-1", mock.AnythingOfType("time.Time")).Return(nil)
	refundRepo.On("FindByID", ctx, "req-1").Return(resolved, nil)

	uc := NewAdminUseCase(new(MockLeadRepository), refundRepo)
	req, err := uc.ApproveRefund(ctx, adminSession(), "req-1")

	assert.NoError(t, err)
	assert.Equal(t, entity.RefundApproved, req.Status)
}

func TestApproveRefundLeadNoLongerSold(t *testing.T) {
	ctx := context.Background()

	refundRepo := new(MockRefundRepository)
	refundRepo.On("Approve", ctx, "req-1", mock.AnythingOfType("time.Time")).Return(entity.ErrStatusConflict)

	uc := NewAdminUseCase(new(MockLeadRepository), refundRepo)
	_, err := uc.ApproveRefund(ctx, adminSession(), "req-1")

	assert.True(t, IsConflictError(err))
}

func TestDenyRefundOnlyAdmins(t *testing.T) {
	uc := NewAdminUseCase(new(MockLeadRepository), new(MockRefundRepository))

	_, err := uc.DenyRefund(context.Background(), buyerSession(), "req-1")
	assert.True(t, IsGuardViolation(err))
}

func TestDenyRefundUnknownRequest(t *testing.T) {
	ctx := context.Background()

	refundRepo := new(MockRefundRepository)
	refundRepo.On("Deny", ctx, "req-1", mock.AnythingOfType("time.Time")).Return(entity.ErrRefundNotFound)

	uc := NewAdminUseCase(new(MockLeadRepository), refundRepo)
	_, err := uc.DenyRefund(ctx, adminSession(), "req-1")

	assert.True(t, IsGuardViolation(err))
}

// Cenário ponta a ponta do ciclo feliz: criado a 49.99, vendido por 60,
// pago — e depois disso nem delete nem refund passam.
func TestPaidLeadIsTerminal(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	paid := newLead()
	paid.Status = entity.StatusPaid
	paid.BuyerID = "buyer-1"
	paid.PurchasedAt = &now

	leadRepo := new(MockLeadRepository)
	leadRepo.On("FindByID", ctx, "lead-1").Return(paid, nil)

	refundRepo := new(MockRefundRepository)

	admin := NewAdminUseCase(leadRepo, refundRepo)
	_, err := admin.DeleteLead(ctx, adminSession(), "lead-1")
	assert.True(t, IsGuardViolation(err))

	refund := NewRequestRefundUseCase(leadRepo, refundRepo)
	_, err = refund.Execute(ctx, buyerSession(), "lead-1", "nunca compareceu")
	assert.True(t, IsGuardViolation(err))
	refundRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
