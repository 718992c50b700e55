package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Mailer define o contrato de entrega de email consumido pelo worker.
type Mailer interface {
	SendNewLead(to, name, leadType, location string) error
	SendLeadSold(to, name, leadType string, buyerPrice int64) error
	SendAppointmentExpiring(to, name, leadType, date, slot string) error
}

type Worker struct {
	Channel *amqp.Channel
	Mailer  Mailer
}

func NewWorker(ch *amqp.Channel, mailer Mailer) *Worker {
	return &Worker{
		Channel: ch,
		Mailer:  mailer,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload NotificationPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem podre. Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("⚙️ [WORKER] Notificando %s (lead=%s evento=%s)",
				payload.RecipientEmail, payload.LeadID, payload.EventKind)

			if err := w.dispatch(payload); err != nil {
				log.Printf("❌ [WORKER] Erro no envio: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) dispatch(payload NotificationPayload) error {
	switch payload.EventKind {
	case EventNewLead:
		return w.Mailer.SendNewLead(payload.RecipientEmail, payload.RecipientName,
			payload.LeadType, payload.Location)

	case EventLeadSold:
		return w.Mailer.SendLeadSold(payload.RecipientEmail, payload.RecipientName,
			payload.LeadType, payload.BuyerPrice)

	case EventAppointmentExpiring:
		return w.Mailer.SendAppointmentExpiring(payload.RecipientEmail, payload.RecipientName,
			payload.LeadType, payload.AppointmentDate, payload.AppointmentSlot)

	default:
		log.Printf("⚠️ Evento desconhecido: %s. Apenas logando.", payload.EventKind)
		// ACK mesmo assim: não sabemos tratar, requeue não vai ajudar.
		return nil
	}
}
