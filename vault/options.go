package vault

import (
	"log/slog"
	"time"
)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for diagnostic messages.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock sets the time source used to date new credentials.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}
