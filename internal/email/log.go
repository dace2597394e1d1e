package email

import (
	"context"
	"log/slog"

	"github.com/newsroom/newsroom/internal/model"
)

// LogSender writes messages to the log instead of delivering them.
// It is meant for local development.
type LogSender struct {
	from   model.SubscriberEmail
	logger *slog.Logger
}

// NewLogSender returns a Sender that only logs.
func NewLogSender(from model.SubscriberEmail, logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{from: from, logger: logger.With("component", "email")}
}

// Send logs the message and always succeeds.
func (s *LogSender) Send(ctx context.Context, recipient model.SubscriberEmail, subject, htmlBody, textBody string) error {
	s.logger.InfoContext(ctx, "email not delivered (log provider)",
		slog.String("from", s.from.String()),
		slog.String("to", model.RedactEmail(recipient.String())),
		slog.String("subject", subject),
		slog.Int("html_bytes", len(htmlBody)),
		slog.Int("text_bytes", len(textBody)),
	)
	s.logger.DebugContext(ctx, "email body", slog.String("text", textBody))
	return nil
}
