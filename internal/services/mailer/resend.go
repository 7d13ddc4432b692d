package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// resendSender implements the Sender interface using the Resend API
type resendSender struct {
	client *resend.Client
	from   string
}

// ResendConfig holds configuration for the Resend-backed sender
type ResendConfig struct {
	// APIKey authenticates against the Resend API
	APIKey string

	// From is the sender address, e.g. "Secret Santa <noreply@example.com>"
	From string
}

// NewResendSender creates a new Resend-backed sender
func NewResendSender(cfg *ResendConfig) (*resendSender, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.APIKey == "" {
		return nil, errors.New("API key cannot be empty")
	}

	if cfg.From == "" {
		return nil, errors.New("from address cannot be empty")
	}

	return &resendSender{
		client: resend.NewClient(cfg.APIKey),
		from:   cfg.From,
	}, nil
}

// Send delivers a single email through Resend
func (r *resendSender) Send(ctx context.Context, email *Email) error {
	if email == nil {
		return errors.New("email cannot be nil")
	}

	params := &resend.SendEmailRequest{
		From:    r.from,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
	}

	if _, err := r.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", email.To, err)
	}

	return nil
}
