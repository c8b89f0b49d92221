package notification

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/medisuite/clinica/internal/config"
	"github.com/medisuite/clinica/pkg/logger"
)

// Notifier is the out-of-band notification port. The session service calls
// it on password-reset requests; delivery failures never affect the
// requesting operation.
type Notifier interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// Noop logs the request and discards it. Default when SMTP is not
// configured.
type Noop struct {
	logger *logger.Logger
}

func NewNoop(l *logger.Logger) *Noop {
	return &Noop{logger: l}
}

func (n *Noop) SendPasswordReset(_ context.Context, email, token string) error {
	n.logger.Info("password reset requested", "email", email, "token", token)
	return nil
}

// SMTP delivers reset instructions by mail.
type SMTP struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTP(cfg config.SMTPConfig) *SMTP {
	return &SMTP{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *SMTP) SendPasswordReset(_ context.Context, email, token string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Password reset request")
	m.SetBody("text/plain", fmt.Sprintf(
		"A password reset was requested for this account.\n\nReset code: %s\n\nIf you did not request this, ignore this message.\n", token))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reset mail: %w", err)
	}
	return nil
}
