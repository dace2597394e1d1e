package main

import (
	"log/slog"
)

// closer is a resource opened during startup.
type closer struct {
	name  string
	close func() error
}

// startup tracks resources opened before the server takes ownership of
// them, so a failed boot releases everything opened so far.
type startup struct {
	logger  *slog.Logger
	closers []closer
	exit    func(code int)
}

func (s *startup) add(name string, fn func() error) {
	s.closers = append(s.closers, closer{name: name, close: fn})
}

// release closes the tracked resources newest first. Errors are logged and
// do not stop the remaining closes.
func (s *startup) release() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		c := s.closers[i]
		if err := c.close(); err != nil {
			s.logger.Warn("failed to close resource", slog.String("resource", c.name), slog.String("error", err.Error()))
		}
	}
	s.closers = nil
}

// fail logs msg, releases the tracked resources and exits with status 1.
func (s *startup) fail(msg string, attrs ...any) {
	s.logger.Error(msg, attrs...)
	s.release()
	s.exit(1)
}
