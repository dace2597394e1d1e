package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/newsroom/newsroom/internal/auth"
	"github.com/newsroom/newsroom/internal/model"
)

// minPasswordLength applies to passwords set through the CLI.
const minPasswordLength = 12

var errPasswordTooShort = fmt.Errorf("password must be at least %d characters", minPasswordLength)

type userCreator interface {
	CreateUser(ctx context.Context, user *model.User) error
}

func newPublisherCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publisher",
		Short: "Manage accounts allowed to publish newsletters",
	}

	add := &cobra.Command{
		Use:   "add USERNAME",
		Short: "Create a publisher; the password is read from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd.InOrStdin())
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			repo, err := openRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			user, err := addPublisher(ctx, repo, args[0], password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created publisher %s (%s)\n", user.Username, user.ID)
			return nil
		},
	}
	cmd.AddCommand(add)

	return cmd
}

// readPassword takes the first line of r, without its line ending.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if len(password) < minPasswordLength {
		return "", errPasswordTooShort
	}
	return password, nil
}

func addPublisher(ctx context.Context, store userCreator, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.Contains(username, ":") {
		return nil, fmt.Errorf("invalid username %q", username)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           ulid.Make().String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create publisher: %w", err)
	}
	return user, nil
}
