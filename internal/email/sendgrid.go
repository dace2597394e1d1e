package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/newsroom/newsroom/internal/model"
)

const (
	sendGridHost     = "https://api.sendgrid.com"
	sendGridEndpoint = "/v3/mail/send"
)

// SendGridConfig configures SendGridSender.
type SendGridConfig struct {
	APIKey     string
	Host       string
	From       model.SubscriberEmail
	FromName   string
	HTTPClient *http.Client
}

// SendGridSender delivers mail through the SendGrid v3 Mail Send API.
type SendGridSender struct {
	apiKey string
	host   string
	from   *mail.Email
	client *rest.Client
}

// NewSendGridSender validates cfg and returns a sender.
func NewSendGridSender(cfg SendGridConfig) (*SendGridSender, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("sendgrid api key is required")
	}
	if cfg.Host == "" {
		cfg.Host = sendGridHost
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = NewHTTPClient(0)
	}
	return &SendGridSender{
		apiKey: cfg.APIKey,
		host:   cfg.Host,
		from:   mail.NewEmail(cfg.FromName, cfg.From.String()),
		client: &rest.Client{HTTPClient: cfg.HTTPClient},
	}, nil
}

// Send delivers one message. Any non-2xx answer is an error.
func (s *SendGridSender) Send(ctx context.Context, recipient model.SubscriberEmail, subject, htmlBody, textBody string) error {
	msg := mail.NewV3Mail()
	msg.SetFrom(s.from)
	msg.Subject = subject

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", recipient.String()))
	msg.AddPersonalizations(p)

	// text/plain must precede text/html.
	if textBody != "" {
		msg.AddContent(mail.NewContent("text/plain", textBody))
	}
	if htmlBody != "" {
		msg.AddContent(mail.NewContent("text/html", htmlBody))
	}

	req := sendgrid.GetRequest(s.apiKey, sendGridEndpoint, s.host)
	req.Method = rest.Post
	req.Body = mail.GetRequestBody(msg)

	resp, err := s.client.SendWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ProviderError{Provider: ProviderSendGrid, StatusCode: resp.StatusCode, Body: resp.Body}
	}
	return nil
}
