package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"
)

// Config is the SMTP account reminder emails go out from.
type Config struct {
	Host     string
	Port     string
	From     string
	Password string
}

type Mailer struct {
	cfg Config
	log *zerolog.Logger
}

func New(cfg Config, log *zerolog.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

// SendReminderEmail delivers one reminder to a single attendee. The body is
// the organizer's composed message followed by the event's date range.
func (m *Mailer) SendReminderEmail(eventTitle, startDate, endDate, subject, message, recipientEmail string) error {
	if subject == "" {
		subject = fmt.Sprintf("Reminder: %s", eventTitle)
	}

	var b strings.Builder
	b.WriteString(message)
	b.WriteString("\r\n\r\n")
	fmt.Fprintf(&b, "Event: %s\r\nDates: %s - %s\r\n", eventTitle, startDate, endDate)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.cfg.From, recipientEmail, subject, b.String(),
	)

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{recipientEmail}, []byte(msg)); err != nil {
		m.log.Warn().Msgf("failed to send reminder email to %s: %v", recipientEmail, err)
		return fmt.Errorf("send email: %w", err)
	}

	m.log.Info().Msgf("reminder email sent to %s (event: %s)", recipientEmail, eventTitle)
	return nil
}
