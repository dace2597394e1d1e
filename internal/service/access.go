package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/newsroom/newsroom/internal/auth"
	"github.com/newsroom/newsroom/internal/metrics"
	"github.com/newsroom/newsroom/internal/model"
	"github.com/newsroom/newsroom/internal/repository"
)

// ErrInvalidCredentials is the cause behind every unknown user or wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// dummyPassword is hashed once and verified against for unknown usernames so
// that a missing user costs the same as a wrong password.
const dummyPassword = "newsroom-timing-equalizer"

// UserStore looks up publishers by username.
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// CredentialCache remembers credentials that recently verified.
type CredentialCache interface {
	GetPublisher(ctx context.Context, cacheKey string) (*model.Publisher, error)
	SetPublisher(ctx context.Context, cacheKey string, p *model.Publisher) error
}

// AccessGate authenticates publishers with Basic credentials.
type AccessGate struct {
	users   UserStore
	cache   CredentialCache
	metrics metrics.Recorder
	logger  *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAccessGate creates an AccessGate. cache may be nil.
func NewAccessGate(users UserStore, cache CredentialCache, recorder metrics.Recorder, logger *slog.Logger) *AccessGate {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AccessGate{
		users:   users,
		cache:   cache,
		metrics: recorder,
		logger:  logger.With("component", "access_gate"),
	}
}

// Authenticate verifies the Authorization header value and returns the
// publisher it names. Every credential failure is an auth error; only a
// storage fault during lookup surfaces as a repository error.
func (g *AccessGate) Authenticate(ctx context.Context, header string) (*model.Publisher, error) {
	creds, err := auth.ParseBasicAuth(header)
	if err != nil {
		g.metrics.IncAuthAttempt(metrics.AuthFailure)
		return nil, AuthError(err)
	}

	cacheKey := auth.CredentialCacheKey(creds.Username, creds.Password)
	if p := g.cached(ctx, cacheKey); p != nil {
		g.metrics.IncAuthAttempt(metrics.AuthCacheHit)
		return p, nil
	}

	publisher, err := g.verify(ctx, creds)
	if err != nil {
		var appErr *Error
		if errors.As(err, &appErr) && appErr.Kind == KindAuth {
			g.metrics.IncAuthAttempt(metrics.AuthFailure)
		}
		return nil, err
	}
	g.metrics.IncAuthAttempt(metrics.AuthSuccess)

	if g.cache != nil {
		if err := g.cache.SetPublisher(ctx, cacheKey, publisher); err != nil {
			g.logger.WarnContext(ctx, "failed to cache publisher", slog.String("error", err.Error()))
		}
	}
	return publisher, nil
}

func (g *AccessGate) cached(ctx context.Context, key string) *model.Publisher {
	if g.cache == nil {
		return nil
	}
	p, err := g.cache.GetPublisher(ctx, key)
	if err != nil {
		g.logger.WarnContext(ctx, "credential cache unavailable", slog.String("error", err.Error()))
		return nil
	}
	return p
}

func (g *AccessGate) verify(ctx context.Context, creds model.Credentials) (*model.Publisher, error) {
	user, err := g.users.GetUserByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			g.burnVerification(creds.Password)
			return nil, AuthError(ErrInvalidCredentials)
		}
		return nil, FromRepository(err)
	}

	ok, err := auth.VerifyPassword(creds.Password, user.PasswordHash)
	if err != nil {
		g.logger.ErrorContext(ctx, "stored password hash is unusable",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, AuthError(fmt.Errorf("verify password: %w", err))
	}
	if !ok {
		return nil, AuthError(ErrInvalidCredentials)
	}

	return &model.Publisher{UserID: user.ID, Username: user.Username}, nil
}

func (g *AccessGate) burnVerification(password string) {
	g.dummyOnce.Do(func() {
		hash, err := auth.HashPassword(dummyPassword)
		if err == nil {
			g.dummyHash = hash
		}
	})
	if g.dummyHash != "" {
		_, _ = auth.VerifyPassword(password, g.dummyHash)
	}
}
