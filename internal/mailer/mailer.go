package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"mastery-service/internal/config"
)

// SMTPMailer sends reminder and result emails through a plain SMTP relay.
type SMTPMailer struct {
	config *config.SMTPConfig
}

func NewSMTPMailer(cfg *config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{config: cfg}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	if m.config.Host == "" {
		return fmt.Errorf("smtp not configured")
	}

	recipients := []string{to}
	message := fmt.Appendf(nil, "To: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", strings.Join(recipients, ","), subject, body)

	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	addr := m.config.Host + ":" + m.config.Port

	if err := smtp.SendMail(addr, auth, m.config.From, recipients, message); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}
