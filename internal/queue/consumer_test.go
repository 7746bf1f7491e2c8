package queue

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/goodenergy/platform/internal/mailer"
	"github.com/goodenergy/platform/internal/model"
)

// fakeMailer records sent messages and can simulate failure.
type fakeMailer struct {
	sent []mailer.Message
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg mailer.Message) error {
	f.sent = append(f.sent, msg)
	return f.err
}

func sampleEvent() ReservationConfirmedEvent {
	return ReservationConfirmedEvent{
		ReservationID:  "res-1",
		Name:           "Ana María",
		Email:          "ana@x.com",
		Phone:          "+57 300 000 0000",
		Country:        "Colombia",
		Mode:           model.ModePresencial,
		RemainingSeats: 14,
		TotalSeats:     15,
	}
}

func TestConfirmationEmail(t *testing.T) {
	msg := ConfirmationEmail(sampleEvent())

	if len(msg.To) != 1 || msg.To[0] != "ana@x.com" {
		t.Errorf("to = %v, want the registrant address", msg.To)
	}
	if !strings.Contains(msg.Subject, "Reserva confirmada") {
		t.Errorf("subject %q missing confirmation text", msg.Subject)
	}
	for _, want := range []string{"Ana María", "ana@x.com", "Colombia", "Presencial"} {
		if !strings.Contains(msg.HTML, want) {
			t.Errorf("body missing %q", want)
		}
	}

	virtual := sampleEvent()
	virtual.Mode = model.ModeVirtual
	if msg := ConfirmationEmail(virtual); !strings.Contains(msg.HTML, "Virtual") {
		t.Error("virtual reservation body missing mode label")
	}
}

func TestAdminAlertEmail(t *testing.T) {
	msg := AdminAlertEmail(sampleEvent(), "admin@x.com")

	if len(msg.To) != 1 || msg.To[0] != "admin@x.com" {
		t.Errorf("to = %v, want the admin address", msg.To)
	}
	if !strings.Contains(msg.Subject, "14 asientos restantes") {
		t.Errorf("subject %q missing remaining-seat count", msg.Subject)
	}
	for _, want := range []string{"Ana María", "+57 300 000 0000", "14/15"} {
		if !strings.Contains(msg.HTML, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(msg.HTML, "CONFERENCIA LLENA") {
		t.Error("full warning present with seats still available")
	}
}

func TestAdminAlertEmailCapacityReached(t *testing.T) {
	ev := sampleEvent()
	ev.RemainingSeats = 0
	ev.CapacityReached = true

	msg := AdminAlertEmail(ev, "admin@x.com")
	if !strings.Contains(msg.HTML, "CONFERENCIA LLENA") {
		t.Error("expected full-event warning in the admin alert")
	}
}

func TestAdminAlertEmailPhoneFallback(t *testing.T) {
	ev := sampleEvent()
	ev.Phone = ""

	msg := AdminAlertEmail(ev, "admin@x.com")
	if !strings.Contains(msg.HTML, "No proporcionado") {
		t.Error("expected fallback text for a missing phone number")
	}
}

func TestHandleMessageDeliversBothEmails(t *testing.T) {
	m := &fakeMailer{}
	c := NewConsumer(m, "admin@x.com")

	body, _ := json.Marshal(sampleEvent())
	if err := c.handleMessage(body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.sent) != 2 {
		t.Fatalf("sent %d messages, want 2", len(m.sent))
	}
	if m.sent[0].To[0] != "ana@x.com" || m.sent[1].To[0] != "admin@x.com" {
		t.Errorf("unexpected recipients: %v, %v", m.sent[0].To, m.sent[1].To)
	}
}

func TestHandleMessageSkipsAdminAlertWithoutAddress(t *testing.T) {
	m := &fakeMailer{}
	c := NewConsumer(m, "")

	body, _ := json.Marshal(sampleEvent())
	if err := c.handleMessage(body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.sent) != 1 {
		t.Fatalf("sent %d messages, want confirmation only", len(m.sent))
	}
}

func TestHandleMessageMailerFailureIsSwallowed(t *testing.T) {
	m := &fakeMailer{err: errors.New("resend down")}
	c := NewConsumer(m, "admin@x.com")

	body, _ := json.Marshal(sampleEvent())
	if err := c.handleMessage(body); err != nil {
		t.Fatalf("email failure escalated: %v", err)
	}
	if len(m.sent) != 2 {
		t.Errorf("sent %d messages, want both attempts", len(m.sent))
	}
}

func TestHandleMessageRejectsMalformedPayload(t *testing.T) {
	c := NewConsumer(&fakeMailer{}, "admin@x.com")
	if err := c.handleMessage([]byte("{not json")); err == nil {
		t.Fatal("expected an unmarshal error")
	}
}
