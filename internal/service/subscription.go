// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/newsroom/newsroom/internal/auth"
	"github.com/newsroom/newsroom/internal/email"
	"github.com/newsroom/newsroom/internal/metrics"
	"github.com/newsroom/newsroom/internal/model"
	"github.com/newsroom/newsroom/internal/repository"
)

// ConfirmPath is the route a confirmation link points at.
const ConfirmPath = "/subscriptions/confirm"

// SubscriptionStore is the storage the onboarding flow needs.
type SubscriptionStore interface {
	Begin(ctx context.Context) (repository.SubscriptionTx, error)
	GetSubscriberIDByToken(ctx context.Context, token string) (model.SubscriberID, bool, error)
	UpdateConfirmationStatus(ctx context.Context, id model.SubscriberID) error
}

// SubscriptionService runs onboarding and confirmation.
type SubscriptionService struct {
	store   SubscriptionStore
	sender  email.Sender
	baseURL string
	metrics metrics.Recorder
	logger  *slog.Logger
	tokens  func() string
	now     func() time.Time
}

// SubscriptionOption customizes a SubscriptionService.
type SubscriptionOption func(*SubscriptionService)

// WithTokenGenerator replaces the confirmation token source.
func WithTokenGenerator(fn func() string) SubscriptionOption {
	return func(s *SubscriptionService) {
		s.tokens = fn
	}
}

// WithClock replaces the time source used for subscribed_at.
func WithClock(fn func() time.Time) SubscriptionOption {
	return func(s *SubscriptionService) {
		s.now = fn
	}
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(
	store SubscriptionStore,
	sender email.Sender,
	baseURL string,
	recorder metrics.Recorder,
	logger *slog.Logger,
	opts ...SubscriptionOption,
) *SubscriptionService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &SubscriptionService{
		store:   store,
		sender:  sender,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		metrics: recorder,
		logger:  logger.With("component", "subscription"),
		tokens:  auth.GenerateSubscriptionToken,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubscribeInput is the untrusted onboarding form.
type SubscribeInput struct {
	Name  string
	Email string
}

// Parse validates the form into a NewSubscriber.
func (in SubscribeInput) Parse() (model.NewSubscriber, error) {
	name, err := model.ParseSubscriberName(in.Name)
	if err != nil {
		return model.NewSubscriber{}, validationError(err)
	}
	addr, err := model.ParseSubscriberEmail(in.Email)
	if err != nil {
		return model.NewSubscriber{}, validationError(err)
	}
	return model.NewSubscriber{Name: name, Email: addr}, nil
}

func validationError(err error) *Error {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return DomainError(ve.Message, err)
	}
	return DomainError(err.Error(), err)
}

// Subscribe records a pending subscriber and its confirmation token in one
// transaction, then sends the confirmation email. The email goes out only
// after commit; if it fails the subscriber stays pending and the call reports
// an internal logic error.
func (s *SubscriptionService) Subscribe(ctx context.Context, in SubscribeInput) (*model.Subscriber, error) {
	newSub, err := in.Parse()
	if err != nil {
		return nil, err
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, FromRepository(err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil {
			s.logger.WarnContext(ctx, "rollback failed", slog.String("error", err.Error()))
		}
	}()

	sub := model.NewPendingSubscriber(newSub, s.now())
	if err := tx.InsertSubscriber(ctx, sub); err != nil {
		return nil, FromRepository(err)
	}

	token := s.tokens()
	if err := tx.StoreToken(ctx, sub.ID, token); err != nil {
		return nil, FromRepository(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, FromRepository(err)
	}
	s.metrics.IncSubscriptionCreated()

	s.logger.InfoContext(ctx, "subscriber pending confirmation",
		slog.String("subscriber_id", sub.ID.String()),
		slog.String("email", model.RedactEmail(sub.Email)),
	)

	if err := s.sendConfirmation(ctx, newSub.Email, token); err != nil {
		s.metrics.IncConfirmationEmail(metrics.StatusFailed)
		return sub, InternalLogicError(MsgConfirmationEmail, err)
	}
	s.metrics.IncConfirmationEmail(metrics.StatusSent)

	return sub, nil
}

// ConfirmationLink builds the link mailed to a new subscriber.
func (s *SubscriptionService) ConfirmationLink(token string) string {
	return s.baseURL + ConfirmPath + "?token=" + url.QueryEscape(token)
}

func (s *SubscriptionService) sendConfirmation(ctx context.Context, to model.SubscriberEmail, token string) error {
	link := s.ConfirmationLink(token)
	html := fmt.Sprintf(`Welcome to our newsletter!<br />Click <a href="%s">here</a> to confirm your subscription.`, link)
	text := fmt.Sprintf("Welcome to our newsletter!\nVisit %s to confirm your subscription.", link)

	if err := s.sender.Send(ctx, to, "Welcome!", html, text); err != nil {
		return fmt.Errorf("send confirmation: %w", err)
	}
	return nil
}

// Confirm redeems a confirmation token. An unknown token is a domain error
// and changes nothing; a known token marks its subscriber confirmed, which is
// idempotent.
func (s *SubscriptionService) Confirm(ctx context.Context, token string) (model.SubscriberID, error) {
	id, found, err := s.store.GetSubscriberIDByToken(ctx, token)
	if err != nil {
		return "", FromRepository(err)
	}
	if !found {
		return "", DomainError(MsgTokenNotFound, nil)
	}

	if err := s.store.UpdateConfirmationStatus(ctx, id); err != nil {
		return "", FromRepository(err)
	}
	s.metrics.IncSubscriptionConfirmed()

	s.logger.InfoContext(ctx, "subscriber confirmed", slog.String("subscriber_id", id.String()))
	return id, nil
}
