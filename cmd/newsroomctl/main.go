// Command newsroomctl administers the newsletter database: schema migrations
// and publisher accounts.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/newsroom/newsroom/internal/repository"
)

var (
	databaseURL string
	timeout     time.Duration
	version     = "dev"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "newsroomctl",
		Short:         "Administer the newsletter service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "overall command timeout")

	root.AddCommand(
		newMigrateCmd(),
		newPublisherCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the newsroomctl version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
	)
	return root
}

// openRepository connects using the persistent flags. The caller closes it.
func openRepository(ctx context.Context) (*repository.Repository, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("--database-url or DATABASE_URL is required")
	}
	opts := repository.DefaultOptions()
	opts.MinConns = 0
	opts.MaxConns = 2
	return repository.New(ctx, databaseURL, opts)
}
