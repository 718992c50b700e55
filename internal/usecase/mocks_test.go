package usecase

import (
	"context"
	"time"

	"github.com/brunovale/lead-exchange/internal/entity"
	"github.com/brunovale/lead-exchange/internal/infra/integration/checkout"
	"github.com/brunovale/lead-exchange/internal/infra/queue"
	"github.com/stretchr/testify/mock"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Reserve(ctx context.Context, leadID, buyerID, buyerName string) error {
	args := m.Called(ctx, leadID, buyerID, buyerName)
	return args.Error(0)
}

func (m *MockLeadRepository) Release(ctx context.Context, leadID string) error {
	args := m.Called(ctx, leadID)
	return args.Error(0)
}

func (m *MockLeadRepository) MarkSold(ctx context.Context, leadID string, purchasedAt time.Time) error {
	args := m.Called(ctx, leadID, purchasedAt)
	return args.Error(0)
}

func (m *MockLeadRepository) MarkPaid(ctx context.Context, leadID string) error {
	args := m.Called(ctx, leadID)
	return args.Error(0)
}

func (m *MockLeadRepository) Erase(ctx context.Context, leadID string) error {
	args := m.Called(ctx, leadID)
	return args.Error(0)
}

// MockRefundRepository
type MockRefundRepository struct {
	mock.Mock
}

func (m *MockRefundRepository) Create(ctx context.Context, req *entity.RefundRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRefundRepository) FindByID(ctx context.Context, id string) (*entity.RefundRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RefundRequest), args.Error(1)
}

func (m *MockRefundRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.RefundRequest, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.RefundRequest), args.Error(1)
}

func (m *MockRefundRepository) Approve(ctx context.Context, requestID string, resolvedAt time.Time) error {
	args := m.Called(ctx, requestID, resolvedAt)
	return args.Error(0)
}

func (m *MockRefundRepository) Deny(ctx context.Context, requestID string, resolvedAt time.Time) error {
	args := m.Called(ctx, requestID, resolvedAt)
	return args.Error(0)
}

// MockNotificationPublisher
type MockNotificationPublisher struct {
	mock.Mock
}

func (m *MockNotificationPublisher) PublishNotification(ctx context.Context, payload queue.NotificationPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockCheckoutGateway
type MockCheckoutGateway struct {
	mock.Mock
}

func (m *MockCheckoutGateway) CreateSession(ctx context.Context, input checkout.SessionInput) (*checkout.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Session), args.Error(1)
}

// Helpers compartilhados pelos testes

func ptrFloat(v float64) *float64 {
	return &v
}

func sellerSession() entity.Session {
	return entity.Session{UserID: "seller-1", Name: "Maria Souza", Role: entity.RoleSeller}
}

func buyerSession() entity.Session {
	return entity.Session{UserID: "buyer-1", Name: "Carlos Lima", Role: entity.RoleBuyer}
}

func adminSession() entity.Session {
	return entity.Session{UserID: "admin-1", Name: "Admin", Role: entity.RoleAdmin}
}

func validInput() LeadInput {
	return LeadInput{
		Type:               "roofing",
		Location:           "Austin, TX",
		ZipCode:            "73301",
		Description:        "Roof leak repair, two-story house",
		Address:            "100 Congress Ave",
		ContactName:        "John Carter",
		ContactEmail:       "john@example.com",
		ContactPhone:       "+1 512 555 0100",
		Price:              ptrFloat(49.99),
		QualityRating:      4,
		ConfirmationStatus: "unconfirmed",
	}
}
