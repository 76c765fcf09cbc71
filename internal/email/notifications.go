package email

import (
	"context"
	"errors"
	"log/slog"

	"callhelper/internal/config"
	"callhelper/internal/models"
)

// ErrEscalationDisabled is returned when SMTP or ESCALATION_EMAIL is not configured.
var ErrEscalationDisabled = errors.New("escalation email not configured")

// Notifier sends email notifications for chat events.
type Notifier struct {
	service   *Service
	templates *Templates
	cfg       *config.Config
}

// NewNotifier creates a new email notifier.
func NewNotifier(cfg *config.Config) *Notifier {
	return &Notifier{
		service:   NewService(cfg),
		templates: NewTemplates(cfg),
		cfg:       cfg,
	}
}

// CanEscalate reports whether escalation emails can be delivered.
func (n *Notifier) CanEscalate() bool {
	return n.service.IsEnabled() && n.cfg.EscalationEmail != ""
}

// NotifyEscalation emails the support desk that a chat user asked for a human.
func (n *Notifier) NotifyEscalation(ctx context.Context, e models.Escalation) error {
	if !n.CanEscalate() {
		return ErrEscalationDisabled
	}

	subject, htmlBody, textBody := n.templates.EscalationRequested(e)
	if err := n.service.Send(ctx, []string{n.cfg.EscalationEmail}, subject, htmlBody, textBody); err != nil {
		return err
	}

	slog.Info("escalation email sent", "session_id", e.SessionID, "to", n.cfg.EscalationEmail)
	return nil
}
