package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsroom/newsroom/internal/model"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	c, err := New(context.Background(), "redis://"+mr.Addr(), Options{TTL: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_PublisherRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _ := newTestCache(t)

	got, err := c.GetPublisher(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, got, "miss should be (nil, nil)")

	want := &model.Publisher{UserID: "u1", Username: "editor"}
	require.NoError(t, c.SetPublisher(ctx, "k1", want))

	got, err = c.GetPublisher(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, c.DeletePublisher(ctx, "k1"))
	got, err = c.GetPublisher(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_PublisherExpires(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, mr := newTestCache(t)

	require.NoError(t, c.SetPublisher(ctx, "k1", &model.Publisher{UserID: "u1", Username: "editor"}))
	mr.FastForward(time.Minute + time.Second)

	got, err := c.GetPublisher(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_CorruptEntryIsMiss(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set(publisherCachePrefix+"k1", "{not json"))

	got, err := c.GetPublisher(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_ServerDownIsError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, mr := newTestCache(t)
	mr.Close()

	_, err := c.GetPublisher(ctx, "k1")
	assert.Error(t, err)
	assert.Error(t, c.Ping(ctx))
}

func TestNew_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), "://bad", Options{})
	assert.Error(t, err)
}

func TestNewWithClient(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	c := NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 0)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	assert.NoError(t, c.Ping(ctx))

	require.NoError(t, c.SetPublisher(ctx, "k1", &model.Publisher{UserID: "u1", Username: "editor"}))
	assert.Equal(t, DefaultTTL, mr.TTL(publisherCachePrefix+"k1"))
}

func TestNew_Unreachable(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := New(context.Background(), "redis://"+addr, Options{})
	assert.Error(t, err)
}
