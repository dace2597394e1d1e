package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder exports Recorder events as Prometheus metrics.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	subscriptionsCreated   prometheus.Counter
	subscriptionsConfirmed prometheus.Counter
	confirmationEmails     *prometheus.CounterVec
	newsletterDeliveries   *prometheus.CounterVec
	newsletterDuration     prometheus.Histogram
	authAttempts           *prometheus.CounterVec
}

// NewPrometheus registers the application metrics on a fresh registry,
// alongside the Go runtime and process collectors.
func NewPrometheus() *PrometheusRecorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &PrometheusRecorder{
		registry: reg,
		subscriptionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "newsroom_subscriptions_created_total",
			Help: "Total number of pending subscriptions committed",
		}),
		subscriptionsConfirmed: factory.NewCounter(prometheus.CounterOpts{
			Name: "newsroom_subscriptions_confirmed_total",
			Help: "Total number of successful token confirmations",
		}),
		confirmationEmails: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "newsroom_confirmation_emails_total",
			Help: "Confirmation emails by outcome",
		}, []string{"status"}),
		newsletterDeliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "newsroom_newsletter_deliveries_total",
			Help: "Newsletter recipients by outcome",
		}, []string{"status"}),
		newsletterDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "newsroom_newsletter_duration_seconds",
			Help:    "Duration of a newsletter fan-out run",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		authAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "newsroom_auth_attempts_total",
			Help: "Access gate decisions by outcome",
		}, []string{"outcome"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// Registry exposes the underlying registry.
func (p *PrometheusRecorder) Registry() *prometheus.Registry {
	return p.registry
}

func (p *PrometheusRecorder) IncSubscriptionCreated() {
	p.subscriptionsCreated.Inc()
}

func (p *PrometheusRecorder) IncSubscriptionConfirmed() {
	p.subscriptionsConfirmed.Inc()
}

func (p *PrometheusRecorder) IncConfirmationEmail(status string) {
	p.confirmationEmails.WithLabelValues(status).Inc()
}

func (p *PrometheusRecorder) IncNewsletterDelivery(status string) {
	p.newsletterDeliveries.WithLabelValues(status).Inc()
}

func (p *PrometheusRecorder) ObserveNewsletterDuration(duration time.Duration) {
	p.newsletterDuration.Observe(duration.Seconds())
}

func (p *PrometheusRecorder) IncAuthAttempt(outcome string) {
	p.authAttempts.WithLabelValues(outcome).Inc()
}
