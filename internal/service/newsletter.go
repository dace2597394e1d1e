package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/newsroom/newsroom/internal/email"
	"github.com/newsroom/newsroom/internal/metrics"
	"github.com/newsroom/newsroom/internal/model"
	"github.com/newsroom/newsroom/internal/repository"
)

// ConfirmedEmailLister reads the fan-out audience.
type ConfirmedEmailLister interface {
	ListConfirmedEmails(ctx context.Context) ([]repository.ConfirmedEmail, error)
}

// NewsletterService delivers an issue to every confirmed subscriber.
type NewsletterService struct {
	store   ConfirmedEmailLister
	sender  email.Sender
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewNewsletterService creates a new NewsletterService.
func NewNewsletterService(store ConfirmedEmailLister, sender email.Sender, recorder metrics.Recorder, logger *slog.Logger) *NewsletterService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NewsletterService{
		store:   store,
		sender:  sender,
		metrics: recorder,
		logger:  logger.With("component", "newsletter"),
	}
}

// Publish sends n to each confirmed subscriber, one message per recipient,
// in subscription order. Stored addresses that no longer validate are skipped
// with a warning. The first delivery failure aborts the run; recipients
// already sent to are not retried or reported.
func (s *NewsletterService) Publish(ctx context.Context, n model.Newsletter) error {
	start := time.Now()
	defer func() {
		s.metrics.ObserveNewsletterDuration(time.Since(start))
	}()

	recipients, err := s.store.ListConfirmedEmails(ctx)
	if err != nil {
		return FromRepository(err)
	}

	var sent, skipped int
	for _, r := range recipients {
		if r.Err != nil {
			skipped++
			s.metrics.IncNewsletterDelivery(metrics.StatusSkipped)
			s.logger.WarnContext(ctx, "skipping confirmed subscriber with invalid stored email",
				slog.String("email", model.RedactEmail(r.Raw)),
				slog.String("error", r.Err.Error()),
			)
			continue
		}

		if err := s.sender.Send(ctx, r.Email, n.Title, n.HTMLContent, n.TextContent); err != nil {
			s.metrics.IncNewsletterDelivery(metrics.StatusFailed)
			s.logger.ErrorContext(ctx, "newsletter delivery aborted",
				slog.String("email", model.RedactEmail(r.Email.String())),
				slog.Int("sent", sent),
				slog.Int("skipped", skipped),
				slog.Int("audience", len(recipients)),
			)
			return InternalLogicError(MsgNewsletterSend, fmt.Errorf("send to %s: %w", model.RedactEmail(r.Email.String()), err))
		}
		sent++
		s.metrics.IncNewsletterDelivery(metrics.StatusSent)
	}

	s.logger.InfoContext(ctx, "newsletter published",
		slog.String("title", n.Title),
		slog.Int("sent", sent),
		slog.Int("skipped", skipped),
	)
	return nil
}
