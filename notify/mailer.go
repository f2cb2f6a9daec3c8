package notify

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/mail.v2"

	"varal-dos-sonhos/config"
)

// Mailer delivers messages over SMTP.
type Mailer struct {
	dialer *mail.Dialer
	from   string
}

func NewMailer(cfg config.Mail) *Mailer {
	d := mail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password)
	d.Timeout = 10 * time.Second
	return &Mailer{dialer: d, from: cfg.From}
}

func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(m.build(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

func (m *Mailer) build(msg Message) *mail.Message {
	mm := mail.NewMessage()
	mm.SetHeader("From", m.from)
	mm.SetHeader("To", msg.To)
	mm.SetHeader("Subject", msg.Subject)
	mm.SetBody("text/plain", msg.Body)
	return mm
}
