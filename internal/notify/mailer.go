package notify

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/tickety/tickety-server/internal/config"
)

// Mailer sends transactional email. Only the password-reset flow uses it.
type Mailer interface {
	SendPasswordResetEmail(to, token string) error
}

// NewMailer returns an SMTP mailer when a host is configured, otherwise a
// log-only stub.
func NewMailer(cfg config.NotificationConfig, logger *zap.Logger) Mailer {
	if cfg.SMTPHost == "" {
		return &logMailer{logger: logger}
	}
	return &smtpMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
	}
}

type logMailer struct {
	logger *zap.Logger
}

func (m *logMailer) SendPasswordResetEmail(to, token string) error {
	m.logger.Info("smtp not configured; dropping password reset email", zap.String("to", to))
	return nil
}

type smtpMailer struct {
	cfg    config.NotificationConfig
	dialer *gomail.Dialer
}

func (m *smtpMailer) SendPasswordResetEmail(to, token string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", m.cfg.ResetLinkBase, token)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.EmailFrom)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password Reset Request")
	msg.SetBody("text/plain", fmt.Sprintf(
		"You requested a password reset. Visit the link to choose a new password: %s\n\nIf you did not request this, please ignore this email.",
		resetLink))
	msg.AddAlternative("text/html", fmt.Sprintf(
		`<p>You requested a password reset.</p>
<p><a href="%s">Click here to reset your password</a></p>
<p>If you did not request this, please ignore this email.</p>`,
		resetLink))

	return m.dialer.DialAndSend(msg)
}
