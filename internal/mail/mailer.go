package mail

import (
	"fmt"

	"skincare-backend/config"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer delivers transactional mail. The OTP service only needs this
// one call.
type Mailer interface {
	SendOTP(toEmail, code string) error
}

type SendGridMailer struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

func NewSendGridMailer(cfg *config.MailConfig) *SendGridMailer {
	return &SendGridMailer{
		client:    sendgrid.NewSendClient(cfg.SendGridAPIKey),
		fromName:  cfg.FromName,
		fromEmail: cfg.FromEmail,
	}
}

func (m *SendGridMailer) SendOTP(toEmail, code string) error {
	from := sgmail.NewEmail(m.fromName, m.fromEmail)
	to := sgmail.NewEmail("", toEmail)
	subject := "Your verification code"
	plain := fmt.Sprintf("Your one-time code is %s. It expires in a few minutes.", code)
	html := fmt.Sprintf("<p>Your one-time code is <strong>%s</strong>. It expires in a few minutes.</p>", code)

	message := sgmail.NewSingleEmail(from, subject, to, plain, html)
	response, err := m.client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		log.Error().Int("status", response.StatusCode).Str("body", response.Body).Msg("SendGrid rejected OTP mail")
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}
	return nil
}
