package repository

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"
	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func migrationSource() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationsFS,
		Root:       "migrations",
	}
}

// MigrateUp applies every pending migration and returns how many ran.
func (r *Repository) MigrateUp(ctx context.Context) (int, error) {
	return r.migrate(ctx, migrate.Up, 0)
}

// MigrateDown reverts up to steps migrations. Zero reverts all of them.
func (r *Repository) MigrateDown(ctx context.Context, steps int) (int, error) {
	return r.migrate(ctx, migrate.Down, steps)
}

func (r *Repository) migrate(ctx context.Context, dir migrate.MigrationDirection, max int) (int, error) {
	// db borrows connections from r.pool and is left open; the pool owns them.
	db := stdlib.OpenDBFromPool(r.pool)

	type result struct {
		n   int
		err error
	}
	done := make(chan result, 1)
	go func() {
		n, err := migrate.ExecMax(db, "postgres", migrationSource(), dir, max)
		done <- result{n: n, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("migration interrupted: %w", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return res.n, fmt.Errorf("apply migrations: %w", res.err)
		}
		slog.Default().InfoContext(ctx, "applied migrations",
			slog.Int("count", res.n),
			slog.String("direction", directionName(dir)),
		)
		return res.n, nil
	}
}

func directionName(dir migrate.MigrationDirection) string {
	if dir == migrate.Down {
		return "down"
	}
	return "up"
}
