package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsroom/newsroom/internal/auth"
	"github.com/newsroom/newsroom/internal/repository"
)

func TestReadPassword(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"newline terminated", "correct horse battery\n", "correct horse battery", nil},
		{"crlf", "correct horse battery\r\n", "correct horse battery", nil},
		{"no newline", "correct horse battery", "correct horse battery", nil},
		{"only first line", "correct horse battery\nsecond line\n", "correct horse battery", nil},
		{"too short", "short\n", "", errPasswordTooShort},
		{"empty", "", "", errPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readPassword(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddPublisher(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemory()

	user, err := addPublisher(ctx, store, " editor ", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, "editor", user.Username)

	stored, err := store.GetUserByUsername(ctx, "editor")
	require.NoError(t, err)
	ok, err := auth.VerifyPassword("correct horse battery", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = addPublisher(ctx, store, "editor", "another long password")
	assert.ErrorIs(t, err, repository.ErrUsernameExists)
}

func TestAddPublisher_InvalidUsername(t *testing.T) {
	store := repository.NewMemory()

	for _, name := range []string{"", "   ", "with:colon"} {
		_, err := addPublisher(context.Background(), store, name, "correct horse battery")
		assert.Error(t, err, "username %q", name)
	}
}

func TestRootCmd_Version(t *testing.T) {
	root := newRootCmd()
	var out strings.Builder
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "dev\n", out.String())
}

func TestRootCmd_MigrateRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	root := newRootCmd()
	root.SetOut(&strings.Builder{})
	root.SetErr(&strings.Builder{})
	root.SetArgs([]string{"migrate", "up", "--database-url", ""})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL is required")
}
