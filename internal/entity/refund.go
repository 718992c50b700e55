package entity

import (
	"context"
	"time"
)

type RefundStatus string

const (
	RefundPending  RefundStatus = "pending"
	RefundApproved RefundStatus = "approved"
	RefundDenied   RefundStatus = "denied"
)

type RefundRequest struct {
	ID          string       `json:"id"`
	LeadID      string       `json:"lead_id"`
	RequesterID string       `json:"requester_id"`
	Reason      string       `json:"reason,omitempty"`
	Status      RefundStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	ResolvedAt  *time.Time   `json:"resolved_at,omitempty"`
}

type RefundRequestRepositoryInterface interface {
	// Create falha com ErrPendingRefundExists se já houver request pending
	// para o mesmo lead (unique parcial no banco, não check de cliente).
	Create(ctx context.Context, req *RefundRequest) error
	FindByID(ctx context.Context, id string) (*RefundRequest, error)
	ListByLead(ctx context.Context, leadID string) ([]*RefundRequest, error)

	// Approve resolve o request E vira o lead sold->refunded na mesma
	// transação. O vínculo do buyer no lead permanece intacto.
	Approve(ctx context.Context, requestID string, resolvedAt time.Time) error
	Deny(ctx context.Context, requestID string, resolvedAt time.Time) error
}
