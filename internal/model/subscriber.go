// Package model defines domain entities for the application.
package model

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
	"github.com/oklog/ulid/v2"
)

// MaxSubscriberNameLength is the upper bound on a subscriber name, in characters.
const MaxSubscriberNameLength = 256

// forbiddenNameChars cannot appear anywhere in a subscriber name.
const forbiddenNameChars = `/\()<>{}`

// SubscriberEmail is an email address that passed syntactic validation.
type SubscriberEmail struct {
	value string
}

// ParseSubscriberEmail validates raw input as an email address.
func ParseSubscriberEmail(raw string) (SubscriberEmail, error) {
	local, domain, ok := strings.Cut(raw, "@")
	if !ok || local == "" || domain == "" || !govalidator.IsEmail(raw) {
		return SubscriberEmail{}, newValidationError(ErrInvalidEmail, "%s is not valid email", raw)
	}
	return SubscriberEmail{value: raw}, nil
}

// String returns the address as it was accepted.
func (e SubscriberEmail) String() string {
	return e.value
}

// SubscriberName is a display name that passed validation.
type SubscriberName struct {
	value string
}

// ParseSubscriberName validates raw input as a subscriber name.
// The name must be non-empty after trimming, at most 256 characters
// and must not contain any of / \ ( ) < > { }.
func ParseSubscriberName(raw string) (SubscriberName, error) {
	switch {
	case strings.TrimSpace(raw) == "",
		utf8.RuneCountInString(raw) > MaxSubscriberNameLength,
		strings.ContainsAny(raw, forbiddenNameChars):
		return SubscriberName{}, newValidationError(ErrInvalidName, "%s is not valid subscriber name", raw)
	}
	return SubscriberName{value: raw}, nil
}

// String returns the name as it was accepted.
func (n SubscriberName) String() string {
	return n.value
}

// SubscriberID identifies a subscriber. IDs are ULIDs, so they sort by creation time.
type SubscriberID string

// NewSubscriberID returns a fresh time-ordered identifier.
func NewSubscriberID() SubscriberID {
	return SubscriberID(ulid.Make().String())
}

// ParseSubscriberID validates a stored or transmitted identifier.
func ParseSubscriberID(raw string) (SubscriberID, error) {
	id, err := ulid.ParseStrict(raw)
	if err != nil {
		return "", newValidationError(ErrInvalidSubscriberID, "%s is not valid subscriber id", raw)
	}
	return SubscriberID(id.String()), nil
}

func (id SubscriberID) String() string {
	return string(id)
}

// ConfirmationStatus is the lifecycle state of a subscriber.
type ConfirmationStatus string

const (
	StatusPendingConfirmation ConfirmationStatus = "pending_confirmation"
	StatusConfirmed           ConfirmationStatus = "confirmed"
)

// ParseConfirmationStatus maps a stored status string to a ConfirmationStatus.
func ParseConfirmationStatus(raw string) (ConfirmationStatus, error) {
	switch s := ConfirmationStatus(raw); s {
	case StatusPendingConfirmation, StatusConfirmed:
		return s, nil
	default:
		return "", newValidationError(ErrInvalidStatus, "%s is not valid confirmation status", raw)
	}
}

// IsConfirmed reports whether the subscriber completed double opt-in.
func (s ConfirmationStatus) IsConfirmed() bool {
	return s == StatusConfirmed
}

// NewSubscriber is the validated input for onboarding.
type NewSubscriber struct {
	Email SubscriberEmail
	Name  SubscriberName
}

// Subscriber is a stored newsletter subscriber.
type Subscriber struct {
	ID           SubscriberID       `json:"id"`
	Email        string             `json:"email"`
	Name         string             `json:"name"`
	Status       ConfirmationStatus `json:"status"`
	SubscribedAt time.Time          `json:"subscribed_at"`
}

// NewPendingSubscriber builds the row written during onboarding.
func NewPendingSubscriber(in NewSubscriber, now time.Time) *Subscriber {
	return &Subscriber{
		ID:           NewSubscriberID(),
		Email:        in.Email.String(),
		Name:         in.Name.String(),
		Status:       StatusPendingConfirmation,
		SubscribedAt: now.UTC(),
	}
}

// RedactEmail masks an email address for logs.
// "john.doe@example.com" becomes "jo***@example.com".
func RedactEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return "***@***"
	}
	if len(local) > 2 {
		return local[:2] + "***@" + domain
	}
	return "***@" + domain
}
