package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/sirupsen/logrus"
)

// ResendNotifier sends messages as email through Resend.
type ResendNotifier struct {
	client *resend.Client
	from   string
	log    *logrus.Logger
}

func NewResendNotifier(apiKey, from string, log *logrus.Logger) *ResendNotifier {
	return &ResendNotifier{client: resend.NewClient(apiKey), from: from, log: log}
}

func (n *ResendNotifier) Notify(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return errors.New("notify: message has no recipient")
	}
	sent, err := n.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	n.log.WithField("email_id", sent.Id).Info("email sent")
	return nil
}

// New picks Resend when an API key is configured, else the log notifier.
func New(apiKey, from string, log *logrus.Logger) Notifier {
	if apiKey == "" {
		log.Warn("RESEND_API_KEY not set, notifications are logged only")
		return NewLogNotifier(log)
	}
	return NewResendNotifier(apiKey, from, log)
}
