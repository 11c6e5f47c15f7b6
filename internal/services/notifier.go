package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/AdminHomeSmile/scg-customer-screening/internal/platform/logger"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/platform/sendgrid"
)

// =========================
// Lead notifier
// =========================

type Notifier interface {
	Notify(ctx context.Context, to Recipients, email Email) error
}

type sendGridNotifier struct {
	log    *logger.Logger
	client sendgrid.Client
}

func NewSendGridNotifier(log *logger.Logger, client sendgrid.Client) Notifier {
	return &sendGridNotifier{log: log.With("notifier", "SendGrid"), client: client}
}

func (n *sendGridNotifier) Notify(ctx context.Context, to Recipients, email Email) error {
	if to.Empty() {
		return nil
	}
	res, err := n.client.Send(ctx, sendgrid.SendEmailRequest{
		To:         sendgrid.Addresses(to.To),
		CC:         sendgrid.Addresses(to.CC),
		Subject:    email.Subject,
		HTML:       email.HTML,
		Categories: []string{"lead"},
	})
	if err != nil {
		return fmt.Errorf("send lead email: %w", err)
	}
	n.log.Info("Lead email sent", "to", strings.Join(to.To, ", "), "message_id", res.MessageID)
	return nil
}

// logNotifier is used when no mail transport is configured.
type logNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) Notifier {
	return &logNotifier{log: log.With("notifier", "Log")}
}

func (n *logNotifier) Notify(ctx context.Context, to Recipients, email Email) error {
	n.log.Info("Lead email (not sent, no transport configured)",
		"to", strings.Join(to.To, ", "),
		"cc", strings.Join(to.CC, ", "),
		"html_bytes", len(email.HTML),
	)
	return nil
}
