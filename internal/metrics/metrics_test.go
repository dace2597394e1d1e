package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRecorder(t *testing.T) {
	t.Parallel()

	m := NewInMemory()
	m.IncSubscriptionCreated()
	m.IncSubscriptionConfirmed()
	m.IncConfirmationEmail(StatusSent)
	m.IncConfirmationEmail(StatusFailed)
	m.IncNewsletterDelivery(StatusSent)
	m.IncNewsletterDelivery(StatusSent)
	m.IncNewsletterDelivery(StatusSkipped)
	m.IncNewsletterDelivery(StatusFailed)
	m.ObserveNewsletterDuration(time.Second)
	m.IncAuthAttempt(AuthSuccess)
	m.IncAuthAttempt(AuthFailure)
	m.IncAuthAttempt(AuthCacheHit)

	s := m.Snapshot()
	assert.Equal(t, uint64(1), s.SubscriptionsCreated)
	assert.Equal(t, uint64(1), s.SubscriptionsConfirmed)
	assert.Equal(t, uint64(1), s.ConfirmationEmailsSent)
	assert.Equal(t, uint64(1), s.ConfirmationEmailsFail)
	assert.Equal(t, uint64(2), s.NewsletterSent)
	assert.Equal(t, uint64(1), s.NewsletterSkipped)
	assert.Equal(t, uint64(1), s.NewsletterFailed)
	assert.Equal(t, uint64(1), s.NewsletterRuns)
	assert.Equal(t, time.Second.Nanoseconds(), s.NewsletterDurationTotal)
	assert.Equal(t, uint64(1), s.AuthSuccesses)
	assert.Equal(t, uint64(1), s.AuthFailures)
	assert.Equal(t, uint64(1), s.AuthCacheHits)
}

func TestPrometheusRecorder_Counters(t *testing.T) {
	t.Parallel()

	p := NewPrometheus()
	p.IncSubscriptionCreated()
	p.IncSubscriptionCreated()
	p.IncNewsletterDelivery(StatusSent)
	p.IncAuthAttempt(AuthFailure)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.subscriptionsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.newsletterDeliveries.WithLabelValues(StatusSent)))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.authAttempts.WithLabelValues(AuthFailure)))
}

func TestPrometheusRecorder_Handler(t *testing.T) {
	t.Parallel()

	p := NewPrometheus()
	p.IncSubscriptionConfirmed()
	p.ObserveNewsletterDuration(200 * time.Millisecond)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	out := string(body)
	assert.True(t, strings.Contains(out, "newsroom_subscriptions_confirmed_total 1"))
	assert.True(t, strings.Contains(out, "newsroom_newsletter_duration_seconds_count 1"))
	assert.True(t, strings.Contains(out, "go_goroutines"))
}

func TestNewPrometheus_IndependentRegistries(t *testing.T) {
	t.Parallel()

	// Each recorder owns its registry, so constructing two must not panic
	// on duplicate registration.
	a := NewPrometheus()
	b := NewPrometheus()
	a.IncSubscriptionCreated()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.subscriptionsCreated))
}
