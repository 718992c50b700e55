package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/brunovale/lead-exchange/internal/entity"
	"github.com/jackc/pgx/v5/pgconn"
)

// Schema: unique parcial fecha a corrida de requests duplicados no banco:
//
//	CREATE UNIQUE INDEX refund_requests_one_pending
//	    ON refund_requests (lead_id) WHERE status = 'pending';
type RefundRequestRepository struct {
	DB *sql.DB
}

func NewRefundRequestRepository(db *sql.DB) *RefundRequestRepository {
	return &RefundRequestRepository{DB: db}
}

func (r *RefundRequestRepository) Create(ctx context.Context, req *entity.RefundRequest) error {
	query := `
		INSERT INTO refund_requests (id, lead_id, requester_id, reason, status, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
	`

	_, err := r.DB.ExecContext(ctx, query,
		req.ID, req.LeadID, req.RequesterID, req.Reason, req.Status, req.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return entity.ErrPendingRefundExists
		}
		log.Printf("Erro crítico no banco: %v", err)
		return err
	}
	return nil
}

func (r *RefundRequestRepository) FindByID(ctx context.Context, id string) (*entity.RefundRequest, error) {
	query := `
		SELECT id, lead_id, requester_id, COALESCE(reason, ''), status, created_at, resolved_at
		FROM refund_requests WHERE id = $1
	`

	var (
		req        entity.RefundRequest
		resolvedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.LeadID, &req.RequesterID, &req.Reason, &req.Status, &req.CreatedAt, &resolvedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrRefundNotFound
		}
		return nil, err
	}
	if resolvedAt.Valid {
		t := resolvedAt.Time
		req.ResolvedAt = &t
	}
	return &req, nil
}

func (r *RefundRequestRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.RefundRequest, error) {
	query := `
		SELECT id, lead_id, requester_id, COALESCE(reason, ''), status, created_at, resolved_at
		FROM refund_requests WHERE lead_id = $1 ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []*entity.RefundRequest
	for rows.Next() {
		var (
			req        entity.RefundRequest
			resolvedAt sql.NullTime
		)
		if err := rows.Scan(&req.ID, &req.LeadID, &req.RequesterID, &req.Reason, &req.Status, &req.CreatedAt, &resolvedAt); err != nil {
			return nil, err
		}
		if resolvedAt.Valid {
			t := resolvedAt.Time
			req.ResolvedAt = &t
		}
		reqs = append(reqs, &req)
	}
	return reqs, rows.Err()
}

// Approve resolve o request e aplica sold -> refunded no lead, tudo ou
// nada. O buyer_id do lead fica intacto: refund é flip de status.
func (r *RefundRequestRepository) Approve(ctx context.Context, requestID string, resolvedAt time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("falha ao abrir transação: %w", err)
	}
	defer tx.Rollback()

	var leadID string
	err = tx.QueryRowContext(ctx, `
		UPDATE refund_requests
		SET status = 'approved', resolved_at = $2
		WHERE id = $1 AND status = 'pending'
		RETURNING lead_id
	`, requestID, resolvedAt).Scan(&leadID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.ErrRefundNotFound
		}
		return err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE leads
		SET status = 'refunded', updated_at = NOW()
		WHERE id = $1 AND status = 'sold'
	`, leadID)
	if err != nil {
		return err
	}
	if err := requireRow(res, entity.ErrStatusConflict); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *RefundRequestRepository) Deny(ctx context.Context, requestID string, resolvedAt time.Time) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE refund_requests
		SET status = 'denied', resolved_at = $2
		WHERE id = $1 AND status = 'pending'
	`, requestID, resolvedAt)
	if err != nil {
		return err
	}
	return requireRow(res, entity.ErrRefundNotFound)
}
