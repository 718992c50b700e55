package usecase

import (
	"context"

	"github.com/brunovale/lead-exchange/internal/entity"
	"github.com/brunovale/lead-exchange/internal/infra/integration/checkout"
	"github.com/brunovale/lead-exchange/internal/infra/queue"
)

// LeadInput é o payload de create/edit vindo do seller. Price é ponteiro
// pra distinguir "não enviado" de 0 — 0 é inválido, não default.
type LeadInput struct {
	Type        string `json:"type"`
	Location    string `json:"location"`
	ZipCode     string `json:"zip_code"`
	Description string `json:"description"`
	Address     string `json:"address"`

	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`

	Price         *float64 `json:"price"`
	QualityRating int      `json:"quality_rating"`

	AppointmentDate    string `json:"appointment_date"`
	AppointmentSlot    string `json:"appointment_slot"`
	ConfirmationStatus string `json:"confirmation_status"`
}

// PaymentConfirmation é o sinal que o collaborator de checkout devolve.
// Só identifica o lead (o externalReference ecoado); a identidade do buyer
// vem da reserva, nunca de um corpo de webhook.
type PaymentConfirmation struct {
	Success bool   `json:"success"`
	LeadID  string `json:"lead_id"`
}

type BeginCheckoutOutput struct {
	RedirectURL string `json:"redirect_url"`
	BuyerPrice  int64  `json:"buyer_price"`
}

type CompleteSaleOutput struct {
	Lead *entity.Lead `json:"lead"`
	// EmailDelayed sinaliza degraded-success: a venda commitou, mas o
	// dispatcher de notificação falhou.
	EmailDelayed bool `json:"email_delayed,omitempty"`
}

type CheckoutGateway interface {
	CreateSession(ctx context.Context, input checkout.SessionInput) (*checkout.Session, error)
}

type NotificationPublisher interface {
	PublishNotification(ctx context.Context, payload queue.NotificationPayload) error
}
