// Package repository provides database access layer.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Options tunes the connection pool.
type Options struct {
	MaxConns int32
	MinConns int32
	// AcquireTimeout bounds how long a caller waits for a pooled connection
	// before the attempt is reported as a storage fault.
	AcquireTimeout time.Duration
}

// DefaultOptions returns the pool settings used when none are configured.
func DefaultOptions() Options {
	return Options{
		MaxConns:       10,
		MinConns:       2,
		AcquireTimeout: 2 * time.Second,
	}
}

// Repository provides database access methods.
type Repository struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
}

// New creates a new Repository with a connection pool.
func New(ctx context.Context, databaseURL string, opts Options) (*Repository, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	if opts.MaxConns > 0 {
		config.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 && opts.MinConns <= config.MaxConns {
		config.MinConns = opts.MinConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{pool: pool, acquireTimeout: opts.AcquireTimeout}, nil
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool.
func (r *Repository) Close() {
	r.pool.Close()
}

// Pool returns the underlying connection pool.
// Use sparingly - prefer adding methods to Repository.
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}

// acquire takes a connection from the pool, waiting at most acquireTimeout.
func (r *Repository) acquire(ctx context.Context) (*pgxpool.Conn, error) {
	if r.acquireTimeout <= 0 {
		return r.pool.Acquire(ctx)
	}
	actx, cancel := context.WithTimeout(ctx, r.acquireTimeout)
	defer cancel()
	return r.pool.Acquire(actx)
}

// withConn runs fn on a pooled connection acquired within acquireTimeout.
// A failed acquire is a storage fault tagged with op.
func (r *Repository) withConn(ctx context.Context, op string, fn func(conn *pgxpool.Conn) error) error {
	conn, err := r.acquire(ctx)
	if err != nil {
		return dbError(op+": acquire connection", err)
	}
	defer conn.Release()
	return fn(conn)
}
