// Package loadtest drives a running talentmatch server with generated
// vacancies and checks every returned report for ordering and consistency.
package loadtest

import (
	"errors"
	"time"
)

// ErrInvalidConfig is returned when a Config cannot drive a run.
var ErrInvalidConfig = errors.New("invalid load test config")

// Config holds configuration for the load test.
type Config struct {
	BaseURL string        // Base URL of the service
	Runs    int           // Number of vacancies to submit
	Workers int           // Number of concurrent workers
	Timeout time.Duration // HTTP request timeout
	MinID   int64         // Lowest benchmark employee id to draw
	MaxID   int64         // Highest benchmark employee id to draw
	Refetch int           // Number of runs whose report is fetched again
	Seed    int64         // Seed for vacancy generation
}

// Stats holds test statistics.
type Stats struct {
	Submitted int
	Succeeded int
	Rejected  int // 4xx responses
	Failed    int // transport errors and 5xx responses
	Empty     int // reports without rows
	Verified  int
	Refetched int
	Latencies Latencies
	Duration  time.Duration
}

// Latencies summarizes request durations of successful submissions.
type Latencies struct {
	P50 time.Duration
	P95 time.Duration
	Max time.Duration
}

func (c *Config) validate() error {
	switch {
	case c.BaseURL == "":
		return errors.Join(ErrInvalidConfig, errors.New("base url is required"))
	case c.Runs < 1:
		return errors.Join(ErrInvalidConfig, errors.New("runs must be positive"))
	case c.Workers < 1:
		return errors.Join(ErrInvalidConfig, errors.New("workers must be positive"))
	case c.MinID < 1 || c.MaxID < c.MinID:
		return errors.Join(ErrInvalidConfig, errors.New("benchmark id range is empty"))
	}
	return nil
}
