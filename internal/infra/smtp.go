package infra

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/fullbootcamp/pos-saas-sub000/internal/config"
)

// Mailer wraps SMTP configuration for the verification and invoice mails.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
	baseURL  string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		baseURL:  cfg.AppBaseURL,
	}
}

// SendVerification sends the email-verification link for the given token.
func (m *Mailer) SendVerification(to, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", m.baseURL, token)
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = "Verify your email address"
	e.Text = []byte(fmt.Sprintf(
		"Welcome! Confirm your email address by opening this link:\n\n%s\n\nIf you did not sign up, ignore this message.", link))

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}

// SendInvoice sends a plain-text email with an optional PDF attachment.
func (m *Mailer) SendInvoice(to, subject, body, pdfPath string) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if pdfPath != "" {
		if _, err := e.AttachFile(pdfPath); err != nil {
			return fmt.Errorf("mailer: attach PDF: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
