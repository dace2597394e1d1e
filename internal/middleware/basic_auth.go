package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/newsroom/newsroom/internal/auth"
	"github.com/newsroom/newsroom/internal/model"
	"github.com/newsroom/newsroom/internal/respond"
	"github.com/newsroom/newsroom/internal/service"
)

// BasicRealm is advertised on every 401 from the publisher routes.
const BasicRealm = "publish"

// Authenticator verifies an Authorization header value.
type Authenticator interface {
	Authenticate(ctx context.Context, header string) (*model.Publisher, error)
}

// BasicAuthConfig holds configuration for the Basic auth middleware.
type BasicAuthConfig struct {
	Gate   Authenticator
	Logger *slog.Logger
	// MinDuration pads failed attempts so they take at least this long.
	MinDuration time.Duration
}

// BasicAuth returns a middleware that admits only authenticated publishers.
// The publisher is stored in the request context for downstream handlers.
func BasicAuth(cfg BasicAuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()

			publisher, err := cfg.Gate.Authenticate(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				if service.KindOf(err) == service.KindAuth {
					cfg.Logger.Warn("authentication failed",
						slog.String("reason", err.Error()),
						slog.String("ip", r.RemoteAddr),
						slog.String("endpoint", r.Method+" "+r.URL.Path),
						slog.String("request_id", RequestIDFromContext(r.Context())),
					)
					padDuration(startTime, cfg.MinDuration)
					w.Header().Set("WWW-Authenticate", `Basic realm="`+BasicRealm+`"`)
				}
				respond.Error(w, r, cfg.Logger, err)
				return
			}

			cfg.Logger.Info("authentication successful",
				slog.String("user_id", publisher.UserID),
				slog.String("username", publisher.Username),
				slog.String("endpoint", r.Method+" "+r.URL.Path),
				slog.String("request_id", RequestIDFromContext(r.Context())),
			)

			ctx := auth.ContextWithPublisher(r.Context(), publisher)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func padDuration(start time.Time, min time.Duration) {
	if elapsed := time.Since(start); elapsed < min {
		time.Sleep(min - elapsed)
	}
}
