package repository

import (
	"time"

	"github.com/okian/talentmatch/internal/domain/model"
)

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithPopulation preloads the store.
func WithPopulation(snap model.Snapshot) Option {
	return func(s *MemoryStore) {
		s.importLocked(snap)
	}
}

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// ConnectOption configures Connect.
type ConnectOption func(*connectConfig)

type connectConfig struct {
	retries     int
	minInterval time.Duration
	maxInterval time.Duration
}

// WithConnectRetries bounds reconnect attempts after the first failure.
// Zero disables retrying.
func WithConnectRetries(n int) ConnectOption {
	return func(c *connectConfig) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithConnectBackoff sets the exponential backoff bounds between attempts.
func WithConnectBackoff(minInterval, maxInterval time.Duration) ConnectOption {
	return func(c *connectConfig) {
		if minInterval > 0 && maxInterval >= minInterval {
			c.minInterval = minInterval
			c.maxInterval = maxInterval
		}
	}
}
