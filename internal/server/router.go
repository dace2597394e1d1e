package server

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/newsroom/newsroom/internal/handler"
	"github.com/newsroom/newsroom/internal/middleware"
)

// RouterConfig carries everything the HTTP surface is built from.
type RouterConfig struct {
	Logger        *slog.Logger
	Subscriptions *handler.SubscriptionHandler
	Newsletter    *handler.NewsletterHandler
	Health        *handler.HealthHandler
	Metrics       *handler.MetricsHandler
	Gate          middleware.Authenticator

	IsDevelopment      bool
	AllowedOrigins     []string
	MaxRequestBodySize int64
	AuthMinDuration    time.Duration
}

// NewRouter configures the chi router with all routes and middleware.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recoverer(cfg.Logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment}))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.MaxRequestBodySize > 0 {
		r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))
	}

	r.Get("/healthz", cfg.Health.Healthz)
	r.Get("/readyz", cfg.Health.Readyz)
	if cfg.Metrics != nil {
		r.Get("/metrics", cfg.Metrics.Metrics)
	}

	r.Route("/subscriptions", func(r chi.Router) {
		r.Post("/", cfg.Subscriptions.Subscribe)
		r.Get("/confirm", cfg.Subscriptions.Confirm)
	})

	r.With(middleware.BasicAuth(middleware.BasicAuthConfig{
		Gate:        cfg.Gate,
		Logger:      cfg.Logger,
		MinDuration: cfg.AuthMinDuration,
	})).Post("/newsletter", cfg.Newsletter.Publish)

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}
