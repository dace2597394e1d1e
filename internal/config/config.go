// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/newsroom/newsroom/internal/email"
	"github.com/newsroom/newsroom/internal/repository"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Database (PostgreSQL)
	DatabaseURL      string        `env:"DATABASE_URL,required,notEmpty"`
	DBMaxConns       int32         `env:"DB_MAX_CONNS" envDefault:"10"`
	DBAcquireTimeout time.Duration `env:"DB_ACQUIRE_TIMEOUT" envDefault:"2s"`
	DBAutoMigrate    bool          `env:"DB_AUTO_MIGRATE" envDefault:"true"`

	// Cache (Redis). Optional; when empty, publisher credentials are
	// verified against the database on every request.
	RedisURL     string        `env:"REDIS_URL"`
	AuthCacheTTL time.Duration `env:"AUTH_CACHE_TTL" envDefault:"5m"`

	// Public base URL used in confirmation links (e.g., https://news.example.com)
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Minimum time spent on a rejected publisher login
	AuthMinDuration time.Duration `env:"AUTH_MIN_DURATION" envDefault:"200ms"`

	// CORS configuration
	// Comma-separated list of allowed origins (e.g., "https://example.com,https://app.example.com")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`

	// Outbound email
	EmailProvider      string        `env:"EMAIL_PROVIDER" envDefault:"log"`
	EmailSender        string        `env:"EMAIL_SENDER" envDefault:"newsletter@localhost.localdomain"`
	EmailSenderName    string        `env:"EMAIL_SENDER_NAME" envDefault:""`
	EmailTimeout       time.Duration `env:"EMAIL_TIMEOUT" envDefault:"10s"`
	SendGridAPIKey     string        `env:"SENDGRID_API_KEY"`
	SendGridHost       string        `env:"SENDGRID_HOST"`
	AWSRegion          string        `env:"AWS_REGION"`
	AWSAccessKeyID     string        `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string        `env:"AWS_SECRET_ACCESS_KEY"`
	SESEndpoint        string        `env:"SES_ENDPOINT"`
}

// Validation errors returned by Validate.
var (
	ErrInvalidBaseURL       = errors.New("BASE_URL must be an absolute http(s) URL")
	ErrMissingSendGridKey   = errors.New("SENDGRID_API_KEY is required when EMAIL_PROVIDER=sendgrid")
	ErrMissingAWSRegion     = errors.New("AWS_REGION is required when EMAIL_PROVIDER=ses")
	ErrUnknownEmailProvider = errors.New("EMAIL_PROVIDER must be one of log, sendgrid, ses")
	ErrInvalidPoolSize      = errors.New("DB_MAX_CONNS must be positive")
)

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// RepositoryOptions returns the pool settings for repository.New.
func (c *Config) RepositoryOptions() repository.Options {
	opts := repository.DefaultOptions()
	opts.MaxConns = c.DBMaxConns
	if opts.MinConns > opts.MaxConns {
		opts.MinConns = opts.MaxConns
	}
	opts.AcquireTimeout = c.DBAcquireTimeout
	return opts
}

// EmailConfig returns the provider settings for email.New.
func (c *Config) EmailConfig() email.Config {
	return email.Config{
		Provider:           c.EmailProvider,
		Sender:             c.EmailSender,
		SenderName:         c.EmailSenderName,
		Timeout:            c.EmailTimeout,
		SendGridAPIKey:     c.SendGridAPIKey,
		SendGridHost:       c.SendGridHost,
		AWSRegion:          c.AWSRegion,
		AWSAccessKeyID:     c.AWSAccessKeyID,
		AWSSecretAccessKey: c.AWSSecretAccessKey,
		SESEndpoint:        c.SESEndpoint,
	}
}

// Validate checks settings that env tags cannot express.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}

	if c.DBMaxConns <= 0 {
		return ErrInvalidPoolSize
	}

	switch c.EmailProvider {
	case email.ProviderLog:
	case email.ProviderSendGrid:
		if c.SendGridAPIKey == "" {
			return ErrMissingSendGridKey
		}
	case email.ProviderSES:
		if c.AWSRegion == "" {
			return ErrMissingAWSRegion
		}
	default:
		return fmt.Errorf("%w: got %q", ErrUnknownEmailProvider, c.EmailProvider)
	}

	return nil
}

// Load parses environment variables and returns a validated Config.
// Returns an error if required variables are missing or inconsistent.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
