package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailSender delivers transactional mail. The SendGrid implementation is
// the production one; tests substitute their own.
type EmailSender interface {
	Send(ctx context.Context, toEmail, toName, subject, plainText string) error
}

type sendGridSender struct {
	client   *sendgrid.Client
	fromName string
	fromMail string
}

func NewSendGridSender(apiKey, fromName, fromEmail string) EmailSender {
	return &sendGridSender{
		client:   sendgrid.NewSendClient(apiKey),
		fromName: fromName,
		fromMail: fromEmail,
	}
}

func (s *sendGridSender) Send(ctx context.Context, toEmail, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromMail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, "")

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
