// Package mailer delivers out-of-band notifications. Sending is best
// effort: callers log failures and never surface them to the client.
package mailer

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/flixnettv/flix-Xtreme-Panel/internal/config"
)

type Mailer interface {
	SendPasswordResetLink(email, link string) error
}

type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func (m *SMTPMailer) SendPasswordResetLink(email, link string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Password Reset\r\n\r\nClick here to reset your password: %s\r\n",
		m.from, email, link)

	addr := m.host + ":" + m.port
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	return smtp.SendMail(addr, auth, m.from, []string{email}, []byte(msg))
}

// ConsoleMailer prints reset links to the log; the development default.
type ConsoleMailer struct{}

func (ConsoleMailer) SendPasswordResetLink(email, link string) error {
	log.Printf("📧 Password reset link for %s: %s", email, link)
	return nil
}

func FromConfig(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" {
		return ConsoleMailer{}
	}
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
	}
}
