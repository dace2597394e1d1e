package auth

import (
	"context"

	"github.com/newsroom/newsroom/internal/model"
)

type publisherKey struct{}

// ContextWithPublisher records the publisher admitted by the access gate.
func ContextWithPublisher(ctx context.Context, p *model.Publisher) context.Context {
	return context.WithValue(ctx, publisherKey{}, p)
}

// PublisherFromContext returns the admitted publisher, or nil outside the
// authenticated routes.
func PublisherFromContext(ctx context.Context) *model.Publisher {
	p, _ := ctx.Value(publisherKey{}).(*model.Publisher)
	return p
}
