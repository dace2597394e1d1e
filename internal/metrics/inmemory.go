package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	SubscriptionsCreated    uint64
	SubscriptionsConfirmed  uint64
	ConfirmationEmailsSent  uint64
	ConfirmationEmailsFail  uint64
	NewsletterSent          uint64
	NewsletterFailed        uint64
	NewsletterSkipped       uint64
	NewsletterRuns          uint64
	NewsletterDurationTotal int64
	AuthSuccesses           uint64
	AuthFailures            uint64
	AuthCacheHits           uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	subscriptionsCreated    uint64
	subscriptionsConfirmed  uint64
	confirmationEmailsSent  uint64
	confirmationEmailsFail  uint64
	newsletterSent          uint64
	newsletterFailed        uint64
	newsletterSkipped       uint64
	newsletterRuns          uint64
	newsletterDurationTotal int64
	authSuccesses           uint64
	authFailures            uint64
	authCacheHits           uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		SubscriptionsCreated:    atomic.LoadUint64(&m.subscriptionsCreated),
		SubscriptionsConfirmed:  atomic.LoadUint64(&m.subscriptionsConfirmed),
		ConfirmationEmailsSent:  atomic.LoadUint64(&m.confirmationEmailsSent),
		ConfirmationEmailsFail:  atomic.LoadUint64(&m.confirmationEmailsFail),
		NewsletterSent:          atomic.LoadUint64(&m.newsletterSent),
		NewsletterFailed:        atomic.LoadUint64(&m.newsletterFailed),
		NewsletterSkipped:       atomic.LoadUint64(&m.newsletterSkipped),
		NewsletterRuns:          atomic.LoadUint64(&m.newsletterRuns),
		NewsletterDurationTotal: atomic.LoadInt64(&m.newsletterDurationTotal),
		AuthSuccesses:           atomic.LoadUint64(&m.authSuccesses),
		AuthFailures:            atomic.LoadUint64(&m.authFailures),
		AuthCacheHits:           atomic.LoadUint64(&m.authCacheHits),
	}
}

// IncSubscriptionCreated increments the onboarding counter.
func (m *InMemoryRecorder) IncSubscriptionCreated() {
	atomic.AddUint64(&m.subscriptionsCreated, 1)
}

// IncSubscriptionConfirmed increments the confirmation counter.
func (m *InMemoryRecorder) IncSubscriptionConfirmed() {
	atomic.AddUint64(&m.subscriptionsConfirmed, 1)
}

// IncConfirmationEmail counts a confirmation email attempt.
func (m *InMemoryRecorder) IncConfirmationEmail(status string) {
	if status == StatusSent {
		atomic.AddUint64(&m.confirmationEmailsSent, 1)
		return
	}
	atomic.AddUint64(&m.confirmationEmailsFail, 1)
}

// IncNewsletterDelivery counts one recipient outcome.
func (m *InMemoryRecorder) IncNewsletterDelivery(status string) {
	switch status {
	case StatusSent:
		atomic.AddUint64(&m.newsletterSent, 1)
	case StatusSkipped:
		atomic.AddUint64(&m.newsletterSkipped, 1)
	default:
		atomic.AddUint64(&m.newsletterFailed, 1)
	}
}

// ObserveNewsletterDuration records one fan-out run.
func (m *InMemoryRecorder) ObserveNewsletterDuration(duration time.Duration) {
	atomic.AddUint64(&m.newsletterRuns, 1)
	atomic.AddInt64(&m.newsletterDurationTotal, duration.Nanoseconds())
}

// IncAuthAttempt counts one access gate decision.
func (m *InMemoryRecorder) IncAuthAttempt(outcome string) {
	switch outcome {
	case AuthSuccess:
		atomic.AddUint64(&m.authSuccesses, 1)
	case AuthCacheHit:
		atomic.AddUint64(&m.authCacheHits, 1)
	default:
		atomic.AddUint64(&m.authFailures, 1)
	}
}
