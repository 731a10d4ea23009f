package notifier

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailSender delivers customer-facing notifications.
type EmailSender interface {
	Send(to, toName, subject, plainText, htmlContent string) error
}

type SendGridSender struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridSender(apiKey, fromEmail, fromName string) *SendGridSender {
	return &SendGridSender{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *SendGridSender) Send(to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}

	return nil
}

// NoopSender logs instead of sending; used when no API key is
// configured.
type NoopSender struct {
	log zerolog.Logger
}

func NewNoopSender(log zerolog.Logger) *NoopSender {
	return &NoopSender{log: log}
}

func (s *NoopSender) Send(to, toName, subject, plainText, htmlContent string) error {
	s.log.Info().
		Str("to", to).
		Str("subject", subject).
		Msg("email delivery skipped, no sender configured")
	return nil
}
