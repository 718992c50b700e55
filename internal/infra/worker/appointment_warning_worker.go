package worker

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/brunovale/lead-exchange/internal/infra/queue"
)

// NotificationPublisher evita depender do producer concreto no worker.
type NotificationPublisher interface {
	PublishNotification(ctx context.Context, payload queue.NotificationPayload) error
}

// AppointmentWarningWorker varre leads vendidos cuja visita começa na
// janela de 60±15 minutos e emite appointment-expiring pro seller. A flag
// appointment_warned vira no MESMO update que seleciona a linha — o aviso
// sai exatamente uma vez mesmo com vários workers rodando.
type AppointmentWarningWorker struct {
	db           *sql.DB
	producer     NotificationPublisher
	lookahead    time.Duration
	tolerance    time.Duration
	tickInterval time.Duration
}

func NewAppointmentWarningWorker(db *sql.DB, producer NotificationPublisher) *AppointmentWarningWorker {
	return &AppointmentWarningWorker{
		db:           db,
		producer:     producer,
		lookahead:    60 * time.Minute,
		tolerance:    15 * time.Minute,
		tickInterval: 1 * time.Minute,
	}
}

func (w *AppointmentWarningWorker) Start(ctx context.Context) {
	log.Println("🕒 Appointment Warning Worker iniciado (janela 60±15min)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Appointment Warning Worker encerrado")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *AppointmentWarningWorker) sweep(ctx context.Context) {
	fromMins := int((w.lookahead - w.tolerance) / time.Minute)
	toMins := int((w.lookahead + w.tolerance) / time.Minute)

	query := `
		UPDATE leads
		SET appointment_warned = TRUE, updated_at = NOW()
		WHERE
			status = 'sold'
			AND appointment_warned = FALSE
			AND appointment_at IS NOT NULL
			AND appointment_at BETWEEN NOW() + make_interval(mins => $1) AND NOW() + make_interval(mins => $2)
		RETURNING id, type, seller_id, seller_name, appointment_date, appointment_slot
	`

	rows, err := w.db.QueryContext(ctx, query, fromMins, toMins)
	if err != nil {
		log.Printf("❌ Erro ao buscar visitas próximas: %v", err)
		return
	}
	defer rows.Close()

	warnedCount := 0
	for rows.Next() {
		var (
			leadID, leadType, sellerID, sellerName string
			apptDate, apptSlot                     sql.NullString
		)
		if err := rows.Scan(&leadID, &leadType, &sellerID, &sellerName, &apptDate, &apptSlot); err != nil {
			log.Printf("⚠️ Erro ao escanear lead: %v", err)
			continue
		}

		if err := w.producer.PublishNotification(ctx, queue.NotificationPayload{
			LeadID:          leadID,
			EventKind:       queue.EventAppointmentExpiring,
			RecipientEmail:  sellerID,
			RecipientName:   sellerName,
			LeadType:        leadType,
			AppointmentDate: apptDate.String,
			AppointmentSlot: apptSlot.String,
		}); err != nil {
			// Flag já virou; o aviso dessa visita se perde em vez de
			// duplicar. Preferimos isso a spammar o seller.
			log.Printf("❌ Erro fila (appointment-expiring %s): %v", leadID, err)
			continue
		}
		warnedCount++
	}

	if warnedCount > 0 {
		log.Printf("✅ %d aviso(s) de visita enfileirados", warnedCount)
	}
}
