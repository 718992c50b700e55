package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Eventos que o state machine emite. O dispatcher tolera duplicata: um
// segundo "lead-sold" pro mesmo lead é desperdício, não dano.
const (
	EventNewLead             = "new-lead"
	EventLeadSold            = "lead-sold"
	EventAppointmentExpiring = "appointment-expiring"
)

type NotificationPayload struct {
	LeadID    string `json:"lead_id"`
	EventKind string `json:"event_kind"`

	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`

	LeadType   string `json:"lead_type"`
	Location   string `json:"location"`
	BuyerPrice int64  `json:"buyer_price,omitempty"`

	AppointmentDate string `json:"appointment_date,omitempty"`
	AppointmentSlot string `json:"appointment_slot,omitempty"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishNotification(ctx context.Context, payload NotificationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco
		},
	)

	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
