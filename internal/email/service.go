package email

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/pkg/messaging"
)

// Sender delivers a plain-text message.
type Sender interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg SMTPConfig) Sender {
	return &smtpSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpSender) Send(ctx context.Context, to []string, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(newMessage(s.from, to, subject, body)); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

func newMessage(from string, to []string, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return m
}

// Notifier mails the front desk about appointment changes.
type Notifier struct {
	sender     Sender
	recipients []string
}

func NewNotifier(sender Sender, recipients []string) *Notifier {
	return &Notifier{sender: sender, recipients: recipients}
}

// Register subscribes the notifier to the appointment events it mails about.
func (n *Notifier) Register(d *messaging.Dispatcher) {
	d.Handle(model.EventAppointmentCreated, n.AppointmentChanged)
	d.Handle(model.EventAppointmentUpdated, n.AppointmentChanged)
	d.Handle(model.EventAppointmentDeleted, n.AppointmentChanged)
}

func (n *Notifier) AppointmentChanged(ctx context.Context, msg messaging.Message) error {
	if len(n.recipients) == 0 {
		return nil
	}
	subject, body, err := renderAppointment(msg)
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, n.recipients, subject, body)
}

func renderAppointment(msg messaging.Message) (string, string, error) {
	if msg.Type == model.EventAppointmentDeleted {
		return "Appointment removed",
			fmt.Sprintf("Appointment %s was deleted.\n", msg.AggregateID), nil
	}

	var a model.Appointment
	if err := json.Unmarshal(msg.Payload, &a); err != nil {
		return "", "", fmt.Errorf("failed to decode appointment payload: %w", err)
	}

	verb := "booked"
	if msg.Type == model.EventAppointmentUpdated {
		verb = "updated"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Appointment %s was %s.\n\n", a.ID, verb)
	fmt.Fprintf(&b, "Date:    %s\n", a.Date)
	fmt.Fprintf(&b, "Time:    %s\n", a.Time)
	fmt.Fprintf(&b, "Status:  %s\n", a.Status)
	fmt.Fprintf(&b, "Doctor:  %s\n", a.DoctorID)
	fmt.Fprintf(&b, "Patient: %s\n", a.PatientID)
	if a.Notes != "" {
		fmt.Fprintf(&b, "Notes:   %s\n", a.Notes)
	}

	subject := fmt.Sprintf("Appointment %s: %s %s (%s)", verb, a.Date, a.Time, a.Status)
	return subject, b.String(), nil
}
