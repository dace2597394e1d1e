package main

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartupFail_ReleasesEverythingOpened(t *testing.T) {
	var buf bytes.Buffer
	exitCode := -1
	boot := &startup{
		logger: slog.New(slog.NewJSONHandler(&buf, nil)),
		exit:   func(code int) { exitCode = code },
	}

	var closed []string
	boot.add("postgres", func() error {
		closed = append(closed, "postgres")
		return nil
	})
	boot.add("redis", func() error {
		closed = append(closed, "redis")
		return errors.New("connection reset")
	})

	boot.fail("failed to configure email provider", slog.String("error", "invalid sender address"))

	assert.Equal(t, 1, exitCode)
	assert.Equal(t, []string{"redis", "postgres"}, closed, "newest first, and a failed close does not stop the rest")
	assert.Contains(t, buf.String(), "failed to configure email provider")
	assert.Contains(t, buf.String(), `"resource":"redis"`)
}

func TestStartupRelease_Once(t *testing.T) {
	boot := &startup{logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), exit: func(int) {}}

	n := 0
	boot.add("postgres", func() error {
		n++
		return nil
	})

	boot.release()
	boot.release()
	assert.Equal(t, 1, n)
}
