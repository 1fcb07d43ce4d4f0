package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Message is one outgoing notification.
type Message struct {
	ToName    string
	ToAddress string
	Subject   string
	Text      string
	HTML      string
}

type EmailSender interface {
	SendEmail(ctx context.Context, m Message) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewSendGridSender(apiKey, fromEmail, fromName string) *SendGridSender {
	return &SendGridSender{client: sendgrid.NewSendClient(apiKey), fromEmail: fromEmail, fromName: fromName}
}

func (s *SendGridSender) SendEmail(ctx context.Context, m Message) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(m.ToName, m.ToAddress)
	message := mail.NewSingleEmail(from, m.Subject, to, m.Text, m.HTML)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending email via SendGrid: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("SendGrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

type TwilioSender struct {
	client     *twilio.RestClient
	fromNumber string
	logger     *slog.Logger
}

func NewTwilioSender(accountSID, authToken, fromNumber string, logger *slog.Logger) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSID,
		Password:   authToken,
		AccountSid: accountSID,
	})
	return &TwilioSender{client: client, fromNumber: fromNumber, logger: logger}
}

func (s *TwilioSender) SendSMS(ctx context.Context, to, body string) error {
	if !strings.HasPrefix(to, "+") {
		s.logger.Warn("sms destination is not E.164, delivery may fail", "to", to)
	}
	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.fromNumber)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("error sending SMS via Twilio: %w", err)
	}
	if resp != nil && resp.Sid != nil {
		s.logger.Debug("sms sent", "to", to, "sid", *resp.Sid)
	}
	return nil
}

// LogSender stands in for both channels when no credentials are configured.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) SendEmail(ctx context.Context, m Message) error {
	s.Logger.Info("email not sent, no provider configured", "to", m.ToAddress, "subject", m.Subject)
	return nil
}

func (s LogSender) SendSMS(ctx context.Context, to, body string) error {
	s.Logger.Info("sms not sent, no provider configured", "to", to, "body", body)
	return nil
}

// NotifierConfig holds provider credentials. Missing credentials select the
// logging sender for that channel.
type NotifierConfig struct {
	SendGridAPIKey   string
	FromEmail        string
	FromName         string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
}

func NewSenders(cfg NotifierConfig, logger *slog.Logger) (EmailSender, SMSSender) {
	var (
		email EmailSender = LogSender{Logger: logger}
		sms   SMSSender   = LogSender{Logger: logger}
	)
	if cfg.SendGridAPIKey != "" && cfg.FromEmail != "" {
		email = NewSendGridSender(cfg.SendGridAPIKey, cfg.FromEmail, cfg.FromName)
	} else {
		logger.Warn("SendGrid credentials not set, reminder emails will only be logged")
	}
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioFromNumber != "" {
		sms = NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, logger)
	} else {
		logger.Warn("Twilio credentials not set, reminder SMS will only be logged")
	}
	return email, sms
}
