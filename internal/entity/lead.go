package entity

import (
	"context"
	"time"
)

type LeadStatus string

const (
	StatusNew      LeadStatus = "new"
	StatusPending  LeadStatus = "pending"
	StatusSold     LeadStatus = "sold"
	StatusPaid     LeadStatus = "paid"
	StatusRefunded LeadStatus = "refunded"
	StatusErased   LeadStatus = "erased"
)

type ConfirmationStatus string

const (
	ConfirmationConfirmed   ConfirmationStatus = "confirmed"
	ConfirmationUnconfirmed ConfirmationStatus = "unconfirmed"
)

type Lead struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Location    string `json:"location"`
	ZipCode     string `json:"zip_code"`
	Description string `json:"description"`
	Address     string `json:"address"`

	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone,omitempty"`

	// Price é sempre o pedido original do seller. O valor exibido pro buyer
	// é derivado pelo pricing engine, nunca persistido como segundo campo.
	Price         float64 `json:"price"`
	QualityRating int     `json:"quality_rating"`

	AppointmentDate    string             `json:"appointment_date,omitempty"`
	AppointmentSlot    string             `json:"appointment_slot,omitempty"`
	AppointmentAt      *time.Time         `json:"appointment_at,omitempty"`
	ConfirmationStatus ConfirmationStatus `json:"confirmation_status"`

	Status     LeadStatus `json:"status"`
	SellerID   string     `json:"seller_id"`
	SellerName string     `json:"seller_name"`

	// ReservedBy identifica quem segura a reserva enquanto o lead está em
	// pending. É a única fonte de verdade na conversão pra sold: o webhook
	// do provedor não carrega identidade confiável de buyer.
	ReservedBy     string `json:"reserved_by,omitempty"`
	ReservedByName string `json:"reserved_by_name,omitempty"`

	BuyerID     string     `json:"buyer_id,omitempty"`
	BuyerName   string     `json:"buyer_name,omitempty"`
	PurchasedAt *time.Time `json:"purchased_at,omitempty"`

	AppointmentWarned bool      `json:"appointment_warned"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// allowedTransitions mapeia status atual -> destinos válidos.
var allowedTransitions = map[LeadStatus][]LeadStatus{
	StatusNew:      {StatusPending, StatusErased},
	StatusPending:  {StatusSold, StatusNew, StatusErased},
	StatusSold:     {StatusPaid, StatusRefunded, StatusErased},
	StatusPaid:     {}, // Terminal: nem delete nem refund
	StatusRefunded: {StatusErased},
	StatusErased:   {StatusNew, StatusErased}, // Reativação; re-erase é no-op
}

func CanTransition(from, to LeadStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Sold reporta se o lead já foi vendido a algum buyer. O vínculo nunca é
// limpo depois do primeiro sold, nem por refund.
func (l *Lead) Sold() bool {
	return l.BuyerID != ""
}

func (l *Lead) OwnedBy(userID string) bool {
	return l.SellerID == userID
}

type LeadFilter struct {
	SellerID string
	BuyerID  string
	Status   LeadStatus
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]*Lead, error)
	Update(ctx context.Context, lead *Lead) error

	// Transições condicionais: cada uma é um UPDATE com filtro de status no
	// banco. Se nenhuma linha for afetada, retorna ErrStatusConflict.
	Reserve(ctx context.Context, leadID, buyerID, buyerName string) error
	Release(ctx context.Context, leadID string) error
	MarkSold(ctx context.Context, leadID string, purchasedAt time.Time) error
	MarkPaid(ctx context.Context, leadID string) error
	Erase(ctx context.Context, leadID string) error
}
