// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/newsroom/newsroom/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestSubscriber returns a pending subscriber with a valid address.
func NewTestSubscriber(t testing.TB, email string) *model.Subscriber {
	t.Helper()
	return &model.Subscriber{
		ID:           model.NewSubscriberID(),
		Email:        email,
		Name:         "Test Reader",
		Status:       model.StatusPendingConfirmation,
		SubscribedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

// NewConfirmedSubscriber returns a confirmed subscriber subscribed at the given offset
// from now, so listings have a stable order.
func NewConfirmedSubscriber(t testing.TB, email string, offset time.Duration) *model.Subscriber {
	t.Helper()
	sub := NewTestSubscriber(t, email)
	sub.Status = model.StatusConfirmed
	sub.SubscribedAt = sub.SubscribedAt.Add(offset)
	return sub
}

// UniqueEmail generates a unique address for tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

// UniqueName generates a unique lowercase identifier for tests.
func UniqueName(prefix string) string {
	return strings.ToLower(fmt.Sprintf("%s_%s", prefix, model.NewSubscriberID()))
}
