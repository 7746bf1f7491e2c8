package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/goodenergy/platform/internal/mailer"
	"github.com/goodenergy/platform/internal/model"
)

const (
	confirmationFrom = "Good Energy <noreply@goodenergy.com>"
	systemFrom       = "Good Energy System <system@goodenergy.com>"
)

// Consumer listens to the reservation.confirmed queue and sends the
// registrant confirmation email plus an administrator alert for every
// event.  Email failures are logged and the message is acknowledged
// anyway: the reservation itself is the system of record, so a lost
// email is never retried into a duplicate seat.
type Consumer struct {
	mailer     mailer.Mailer
	adminEmail string
}

// NewConsumer returns a Consumer that delivers through the given
// mailer.  adminEmail may be empty, in which case the administrator
// alert is skipped.
func NewConsumer(m mailer.Mailer, adminEmail string) *Consumer {
	return &Consumer{mailer: m, adminEmail: adminEmail}
}

// Start connects to RabbitMQ, declares the reservation.confirmed queue
// (durable), and starts consuming messages.  It runs a reconnect loop
// with exponential backoff and keeps running indefinitely, logging any
// processing errors so the server continues operating.
func (c *Consumer) Start() error {
	url := brokerURL()

	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("reservation-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := c.consumeLoop(conn); err != nil {
			log.Printf("reservation-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
			continue
		}
	}
}

func (c *Consumer) consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("reservation-consumer: set QoS failed: %v", err)
	}

	_, err = ch.QueueDeclare(reservationQueueName, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(reservationQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := c.handleMessage(d.Body); err != nil {
			log.Printf("reservation-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false) // reject malformed payloads, do not requeue
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func (c *Consumer) handleMessage(body []byte) error {
	var ev ReservationConfirmedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	c.deliver(context.Background(), ev)
	return nil
}

// deliver sends both notifications for one event.  Each send failure is
// logged independently so a broken confirmation does not block the
// admin alert or vice versa.
func (c *Consumer) deliver(ctx context.Context, ev ReservationConfirmedEvent) {
	if err := c.mailer.Send(ctx, ConfirmationEmail(ev)); err != nil {
		log.Printf("reservation-consumer: confirmation email to %s failed: %v", ev.Email, err)
	}
	if c.adminEmail == "" {
		return
	}
	if err := c.mailer.Send(ctx, AdminAlertEmail(ev, c.adminEmail)); err != nil {
		log.Printf("reservation-consumer: admin alert to %s failed: %v", c.adminEmail, err)
	}
}

// ConfirmationEmail builds the registrant-facing confirmation message.
func ConfirmationEmail(ev ReservationConfirmedEvent) mailer.Message {
	modeLabel := "Presencial"
	if ev.Mode == model.ModeVirtual {
		modeLabel = "Virtual"
	}
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1>🌞 ¡Tu asiento está reservado!</h1>
  <h2>Hola %s,</h2>
  <p>¡Excelente! Has reservado tu lugar en la <strong>Conferencia Exclusiva Sol Inversor</strong>.</p>
  <h3>Detalles de tu reserva:</h3>
  <ul>
    <li><strong>📧 Email:</strong> %s</li>
    <li><strong>🌍 País:</strong> %s</li>
    <li><strong>📍 Modalidad:</strong> %s</li>
    <li><strong>📅 Fecha:</strong> Por confirmar (recibirás más detalles pronto)</li>
  </ul>
  <p>Te enviaremos todos los detalles del evento (fecha, horario y enlace) en los próximos días.</p>
  <p>Good Energy - Invierte en energía solar, invierte en el futuro</p>
</div>`, ev.Name, ev.Email, ev.Country, modeLabel)
	return mailer.Message{
		From:    confirmationFrom,
		To:      []string{ev.Email},
		Subject: "✅ Reserva confirmada - Conferencia Sol Inversor",
		HTML:    html,
	}
}

// AdminAlertEmail builds the administrator notification, including a
// warning line when the event has just filled up.
func AdminAlertEmail(ev ReservationConfirmedEvent, adminEmail string) mailer.Message {
	phone := ev.Phone
	if phone == "" {
		phone = "No proporcionado"
	}
	full := ""
	if ev.CapacityReached {
		full = `<p style="color: red;"><strong>⚠️ CONFERENCIA LLENA</strong></p>`
	}
	html := fmt.Sprintf(`<h2>Nueva reserva recibida</h2>
<p><strong>Nombre:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Teléfono:</strong> %s</p>
<p><strong>País:</strong> %s</p>
<p><strong>Modalidad:</strong> %s</p>
<p><strong>Asientos restantes:</strong> %d/%d</p>
%s`, ev.Name, ev.Email, phone, ev.Country, ev.Mode, ev.RemainingSeats, ev.TotalSeats, full)
	return mailer.Message{
		From:    systemFrom,
		To:      []string{adminEmail},
		Subject: fmt.Sprintf("🎯 Nueva reserva conferencia - %d asientos restantes", ev.RemainingSeats),
		HTML:    html,
	}
}
