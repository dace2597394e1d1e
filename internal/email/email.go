// Package email delivers transactional and newsletter email through a
// configurable provider.
package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/newsroom/newsroom/internal/model"
)

//go:generate mockgen -source=email.go -destination=mocks/sender_mock.go -package=mocks Sender

// Sender delivers one message to one recipient.
type Sender interface {
	Send(ctx context.Context, recipient model.SubscriberEmail, subject, htmlBody, textBody string) error
}

// Provider names accepted in Config.Provider.
const (
	ProviderLog      = "log"
	ProviderSendGrid = "sendgrid"
	ProviderSES      = "ses"
)

// ErrUnknownProvider indicates Config.Provider named no supported provider.
var ErrUnknownProvider = errors.New("unknown email provider")

// Config selects and configures a provider.
type Config struct {
	Provider   string
	Sender     string
	SenderName string
	Timeout    time.Duration

	SendGridAPIKey string
	// SendGridHost overrides the API host, e.g. for a local stub.
	SendGridHost string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	// SESEndpoint overrides the SES endpoint, e.g. for a local stub.
	SESEndpoint string
}

// New builds the Sender named by cfg.Provider.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (Sender, error) {
	from, err := model.ParseSubscriberEmail(cfg.Sender)
	if err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}

	switch cfg.Provider {
	case ProviderLog, "":
		return NewLogSender(from, logger), nil
	case ProviderSendGrid:
		s, err := NewSendGridSender(SendGridConfig{
			APIKey:     cfg.SendGridAPIKey,
			Host:       cfg.SendGridHost,
			From:       from,
			FromName:   cfg.SenderName,
			HTTPClient: NewHTTPClient(cfg.Timeout),
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case ProviderSES:
		s, err := NewSESSender(ctx, SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			Endpoint:        cfg.SESEndpoint,
			From:            from,
			FromName:        cfg.SenderName,
			HTTPClient:      NewHTTPClient(cfg.Timeout),
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

// formatFrom renders a From header value.
func formatFrom(name string, addr model.SubscriberEmail) string {
	if name == "" {
		return addr.String()
	}
	return fmt.Sprintf("%s <%s>", name, addr.String())
}
