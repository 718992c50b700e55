package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/brunovale/lead-exchange/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	id, type, location, zip_code, description, address,
	contact_name, contact_email, contact_phone,
	price, quality_rating,
	appointment_date, appointment_slot, appointment_at, confirmation_status,
	status, seller_id, seller_name, reserved_by, reserved_by_name,
	buyer_id, buyer_name, purchased_at,
	appointment_warned, created_at, updated_at
`

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (
			id, type, location, zip_code, description, address,
			contact_name, contact_email, contact_phone,
			price, quality_rating,
			appointment_date, appointment_slot, appointment_at, confirmation_status,
			status, seller_id, seller_name,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, NULLIF($9, ''),
			$10, $11,
			NULLIF($12, ''), NULLIF($13, ''), $14, $15,
			$16, $17, $18,
			$19, $20
		)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID, lead.Type, lead.Location, lead.ZipCode, lead.Description, lead.Address,
		lead.ContactName, lead.ContactEmail, lead.ContactPhone,
		lead.Price, lead.QualityRating,
		lead.AppointmentDate, lead.AppointmentSlot, lead.AppointmentAt, lead.ConfirmationStatus,
		lead.Status, lead.SellerID, lead.SellerName,
		lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao criar lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}
	return lead, nil
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	// Erased só aparece quando pedido explicitamente (seller revisando o
	// que pode reativar).
	query := `SELECT ` + leadColumns + ` FROM leads WHERE 1=1`
	args := []any{}

	if filter.Status == "" {
		query += ` AND status <> 'erased'`
	}
	if filter.SellerID != "" {
		args = append(args, filter.SellerID)
		query += fmt.Sprintf(" AND seller_id = $%d", len(args))
	}
	if filter.BuyerID != "" {
		args = append(args, filter.BuyerID)
		query += fmt.Sprintf(" AND buyer_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads SET
			type = $2, location = $3, zip_code = $4, description = $5, address = $6,
			contact_name = $7, contact_email = $8, contact_phone = NULLIF($9, ''),
			price = $10, quality_rating = $11,
			appointment_date = NULLIF($12, ''), appointment_slot = NULLIF($13, ''),
			appointment_at = $14, confirmation_status = $15,
			status = $16, appointment_warned = $17, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Type, lead.Location, lead.ZipCode, lead.Description, lead.Address,
		lead.ContactName, lead.ContactEmail, lead.ContactPhone,
		lead.Price, lead.QualityRating,
		lead.AppointmentDate, lead.AppointmentSlot,
		lead.AppointmentAt, lead.ConfirmationStatus,
		lead.Status, lead.AppointmentWarned,
	)
	if err != nil {
		return fmt.Errorf("falha ao atualizar lead: %w", err)
	}
	return requireRow(res, entity.ErrLeadNotFound)
}

// Reserve: new -> pending, gravando quem segura a reserva. O filtro de
// status + buyer nulo é a exclusão mútua — o cliente não é confiável, o
// banco é.
func (r *LeadRepository) Reserve(ctx context.Context, leadID, buyerID, buyerName string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE leads
		SET status = 'pending', reserved_by = $2, reserved_by_name = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'new' AND buyer_id IS NULL
	`, leadID, buyerID, buyerName)
	if err != nil {
		return err
	}
	return requireRow(res, entity.ErrStatusConflict)
}

// Release: pending -> new (checkout abandonado ou gateway inconclusivo).
func (r *LeadRepository) Release(ctx context.Context, leadID string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE leads
		SET status = 'new', reserved_by = NULL, reserved_by_name = NULL, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`, leadID)
	if err != nil {
		return err
	}
	return requireRow(res, entity.ErrStatusConflict)
}

// MarkSold: pending -> sold. O vínculo do buyer vem de reserved_by, nunca
// do corpo do webhook — o provedor só ecoa o externalReference.
func (r *LeadRepository) MarkSold(ctx context.Context, leadID string, purchasedAt time.Time) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE leads
		SET status = 'sold',
		    buyer_id = reserved_by, buyer_name = reserved_by_name, purchased_at = $2,
		    reserved_by = NULL, reserved_by_name = NULL, updated_at = NOW()
		WHERE id = $1 AND status = 'pending' AND buyer_id IS NULL AND reserved_by IS NOT NULL
	`, leadID, purchasedAt)
	if err != nil {
		return err
	}
	return requireRow(res, entity.ErrStatusConflict)
}

func (r *LeadRepository) MarkPaid(ctx context.Context, leadID string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE leads
		SET status = 'paid', updated_at = NOW()
		WHERE id = $1 AND status = 'sold'
	`, leadID)
	if err != nil {
		return err
	}
	return requireRow(res, entity.ErrStatusConflict)
}

// Erase: soft-delete. Qualquer status exceto paid; re-erase conta como
// linha afetada (erased -> erased), então o no-op idempotente sai de graça.
func (r *LeadRepository) Erase(ctx context.Context, leadID string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE leads
		SET status = 'erased', updated_at = NOW()
		WHERE id = $1 AND status <> 'paid'
	`, leadID)
	if err != nil {
		return err
	}
	return requireRow(res, entity.ErrStatusConflict)
}

func requireRow(res sql.Result, sentinel error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sentinel
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var (
		lead            entity.Lead
		contactPhone    sql.NullString
		appointmentDate sql.NullString
		appointmentSlot sql.NullString
		appointmentAt   sql.NullTime
		reservedBy      sql.NullString
		reservedByName  sql.NullString
		buyerID         sql.NullString
		buyerName       sql.NullString
		purchasedAt     sql.NullTime
	)

	err := row.Scan(
		&lead.ID, &lead.Type, &lead.Location, &lead.ZipCode, &lead.Description, &lead.Address,
		&lead.ContactName, &lead.ContactEmail, &contactPhone,
		&lead.Price, &lead.QualityRating,
		&appointmentDate, &appointmentSlot, &appointmentAt, &lead.ConfirmationStatus,
		&lead.Status, &lead.SellerID, &lead.SellerName, &reservedBy, &reservedByName,
		&buyerID, &buyerName, &purchasedAt,
		&lead.AppointmentWarned, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.ContactPhone = contactPhone.String
	lead.AppointmentDate = appointmentDate.String
	lead.AppointmentSlot = appointmentSlot.String
	if appointmentAt.Valid {
		t := appointmentAt.Time
		lead.AppointmentAt = &t
	}
	lead.ReservedBy = reservedBy.String
	lead.ReservedByName = reservedByName.String
	lead.BuyerID = buyerID.String
	lead.BuyerName = buyerName.String
	if purchasedAt.Valid {
		t := purchasedAt.Time
		lead.PurchasedAt = &t
	}

	return &lead, nil
}
