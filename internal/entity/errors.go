package entity

import "errors"

var (
	ErrLeadNotFound   = errors.New("lead not found")
	ErrRefundNotFound = errors.New("refund request not found")

	// ErrStatusConflict: o UPDATE condicional não afetou nenhuma linha
	// porque outro ator mudou o status primeiro.
	ErrStatusConflict = errors.New("lead status changed concurrently")

	// ErrPendingRefundExists: unique parcial (lead_id WHERE status='pending')
	// violada no insert.
	ErrPendingRefundExists = errors.New("a pending refund request already exists for this lead")

	ErrUnknownRole = errors.New("unknown role")
)
