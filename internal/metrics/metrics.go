// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Outcome labels.
const (
	StatusSent    = "sent"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"

	AuthSuccess  = "success"
	AuthFailure  = "failure"
	AuthCacheHit = "cache_hit"
)

// Recorder captures metric events for the application.
type Recorder interface {
	// Subscription lifecycle
	IncSubscriptionCreated()
	IncSubscriptionConfirmed()
	IncConfirmationEmail(status string) // status: "sent" or "failed"

	// Newsletter fan-out
	IncNewsletterDelivery(status string) // status: "sent", "failed", "skipped"
	ObserveNewsletterDuration(duration time.Duration)

	// Access gate
	IncAuthAttempt(outcome string) // outcome: "success", "failure", "cache_hit"
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
