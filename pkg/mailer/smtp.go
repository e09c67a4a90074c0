package mailer

import (
	"fmt"
	"log"
	"net/smtp"
)

// Mailer sends a plain-text email.
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	FromName string
}

type SMTPMailer struct {
	config SMTPConfig
}

func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	return &SMTPMailer{config: config}
}

func (m *SMTPMailer) configured() bool {
	return m.config.Host != "" && m.config.Username != "" && m.config.Password != ""
}

// Send delivers via SMTP when credentials are configured. Without them it logs
// the message instead, which keeps local development working with no mail
// account.
func (m *SMTPMailer) Send(to, subject, body string) error {
	if !m.configured() {
		log.Printf("[MOCK EMAIL] to=%s subject=%q\n%s", to, subject, body)
		return nil
	}

	from := m.config.Username
	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		m.config.FromName, from, to, subject, body)

	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)
	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}
