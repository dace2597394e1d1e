// Package main is the entrypoint for the newsletter API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/newsroom/newsroom/internal/cache"
	"github.com/newsroom/newsroom/internal/config"
	"github.com/newsroom/newsroom/internal/email"
	"github.com/newsroom/newsroom/internal/handler"
	"github.com/newsroom/newsroom/internal/metrics"
	"github.com/newsroom/newsroom/internal/repository"
	"github.com/newsroom/newsroom/internal/server"
	"github.com/newsroom/newsroom/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)
	boot := &startup{logger: logger, exit: os.Exit}

	repo, err := repository.New(ctx, cfg.DatabaseURL, cfg.RepositoryOptions())
	if err != nil {
		boot.fail(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
	}
	boot.add("postgres", func() error {
		repo.Close()
		return nil
	})
	logger.Info("connected to database")

	if cfg.DBAutoMigrate {
		applied, err := repo.MigrateUp(ctx)
		if err != nil {
			boot.fail("failed to apply migrations", slog.String("error", sanitizeError(err, cfg.DatabaseURL)))
		}
		logger.Info("migrations applied", slog.Int("count", applied))
	}

	// The cache is optional. Keep the interface values nil when it is off so
	// the gate and readiness probe see "not configured" rather than a nil *Cache.
	var (
		credCache   service.CredentialCache
		cacheHealth handler.HealthChecker
		cacheClient *cache.Cache
	)
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL, cache.Options{TTL: cfg.AuthCacheTTL})
		if err != nil {
			boot.fail(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
		}
		boot.add("redis", cacheClient.Close)
		credCache = cacheClient
		cacheHealth = cacheClient
		logger.Info("connected to Redis")
	}

	sender, err := email.New(ctx, cfg.EmailConfig(), logger)
	if err != nil {
		boot.fail("failed to configure email provider", slog.String("error", err.Error()))
	}
	logger.Info("email provider ready", slog.String("provider", cfg.EmailProvider))

	recorder := metrics.NewPrometheus()

	subscriptionService := service.NewSubscriptionService(repo, sender, cfg.BaseURL, recorder, logger)
	newsletterService := service.NewNewsletterService(repo, sender, recorder, logger)
	gate := service.NewAccessGate(repo, credCache, recorder, logger)

	router := server.NewRouter(server.RouterConfig{
		Logger:        logger,
		Subscriptions: handler.NewSubscriptionHandler(subscriptionService, logger),
		Newsletter:    handler.NewNewsletterHandler(newsletterService, logger),
		Health: handler.NewHealthHandler(
			handler.Dependency{Name: "postgres", Checker: repo},
			handler.Dependency{Name: "redis", Checker: cacheHealth},
		),
		Metrics:            handler.NewMetricsHandler(recorder.Handler()),
		Gate:               gate,
		IsDevelopment:      cfg.IsDevelopment(),
		AllowedOrigins:     cfg.GetCORSAllowedOrigins(),
		MaxRequestBodySize: cfg.MaxRequestBodySize,
		AuthMinDuration:    cfg.AuthMinDuration,
	})

	srv := server.New(router, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	srv.OnShutdown("postgres", func(ctx context.Context) error {
		repo.Close()
		return nil
	})
	if cacheClient != nil {
		srv.OnShutdown("redis", func(ctx context.Context) error {
			return cacheClient.Close()
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"base_url", cfg.BaseURL,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
