//go:build integration

package testutil

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

var (
	containerOnce sync.Once
	containerURL  string
	containerErr  error
)

// PostgresURL returns a server URL for integration tests. DATABASE_URL wins when set;
// otherwise a shared postgres container is started on first use. The container is
// not terminated per test; Ryuk reaps it when the test binary exits.
func PostgresURL(t testing.TB) string {
	t.Helper()

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}

	containerOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		var container *tcpostgres.PostgresContainer
		container, containerErr = tcpostgres.Run(ctx, "postgres:16-alpine",
			tcpostgres.WithDatabase("newsroom"),
			tcpostgres.WithUsername("newsroom"),
			tcpostgres.WithPassword("newsroom"),
			tcpostgres.BasicWaitStrategies(),
		)
		if containerErr != nil {
			return
		}
		containerURL, containerErr = container.ConnectionString(ctx, "sslmode=disable")
		if containerErr != nil {
			_ = testcontainers.TerminateContainer(container)
		}
	})
	if containerErr != nil {
		t.Skipf("postgres unavailable: %v", containerErr)
	}
	return containerURL
}

// NewDatabase creates an empty database on the test server and returns its URL.
// The database is dropped when the test finishes.
func NewDatabase(t testing.TB) string {
	t.Helper()

	serverURL := PostgresURL(t)
	ctx := context.Background()

	admin, err := pgx.Connect(ctx, serverURL)
	if err != nil {
		t.Fatalf("connect to postgres: %v", err)
	}
	defer admin.Close(ctx)

	name := UniqueName("test")
	if _, err := admin.Exec(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(name)); err != nil {
		t.Fatalf("create database %s: %v", name, err)
	}

	t.Cleanup(func() {
		ctx := context.Background()
		conn, err := pgx.Connect(ctx, serverURL)
		if err != nil {
			return
		}
		defer conn.Close(ctx)
		_, _ = conn.Exec(ctx, "DROP DATABASE IF EXISTS "+pq.QuoteIdentifier(name)+" WITH (FORCE)")
	})

	dbURL, err := withDatabase(serverURL, name)
	if err != nil {
		t.Fatalf("build database url: %v", err)
	}
	return dbURL
}

func withDatabase(serverURL, name string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("parse database url: %w", err)
	}
	u.Path = "/" + name
	return u.String(), nil
}
