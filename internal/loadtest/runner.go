package loadtest

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/talentmatch/pkg/logger"
)

const percentile95 = 0.95

type result struct {
	runID   int64
	status  int
	latency time.Duration
	err     error
}

// Run executes the complete load test and returns its statistics. Transport
// failures and 5xx responses are counted, not returned; the returned error
// reports configuration problems, an unhealthy service and inconsistent
// reports.
func Run(ctx context.Context, cfg Config) (Stats, error) {
	var stats Stats
	if err := cfg.validate(); err != nil {
		return stats, err
	}
	log := logger.Named("loadtest")
	start := time.Now()

	log.Info(ctx, "starting load test",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("runs", cfg.Runs),
		logger.Int("workers", cfg.Workers),
		logger.Int64("minID", cfg.MinID),
		logger.Int64("maxID", cfg.MaxID),
	)

	client := NewHTTPClient(cfg.BaseURL, cfg.Timeout)
	if err := client.Health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	vacancies := Generate(cfg.Runs, cfg.MinID, cfg.MaxID, cfg.Seed)
	results := make([]result, len(vacancies))
	posted := make(map[int64]MatchResponse, len(vacancies))
	var (
		mu        sync.Mutex
		verifyErr error
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, v := range vacancies {
		i, v := i, v
		g.Go(func() error {
			began := time.Now()
			resp, status, err := client.Match(gCtx, v)
			results[i] = result{runID: resp.RunID, status: status, latency: time.Since(began), err: err}
			if err != nil || status != http.StatusCreated {
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			posted[resp.RunID] = resp
			if vErr := Verify(resp.Report); vErr != nil && verifyErr == nil {
				verifyErr = fmt.Errorf("run %d: %w", resp.RunID, vErr)
			}
			return nil
		})
	}
	_ = g.Wait()

	latencies := make([]time.Duration, 0, len(results))
	for _, r := range results {
		stats.Submitted++
		switch {
		case r.err != nil || r.status >= http.StatusInternalServerError:
			stats.Failed++
			log.Debug(ctx, "submission failed", logger.Int("status", r.status), logger.Error(r.err))
		case r.status == http.StatusCreated:
			stats.Succeeded++
			latencies = append(latencies, r.latency)
			if len(posted[r.runID].Report.Rows) == 0 {
				stats.Empty++
			}
		default:
			stats.Rejected++
		}
	}
	stats.Verified = stats.Succeeded
	stats.Latencies = summarize(latencies)
	if verifyErr != nil {
		stats.Verified = 0
		return stats, verifyErr
	}

	if err := refetch(ctx, client, cfg.Refetch, posted, &stats); err != nil {
		return stats, err
	}

	stats.Duration = time.Since(start)
	log.Info(ctx, "load test completed",
		logger.Int("submitted", stats.Submitted),
		logger.Int("succeeded", stats.Succeeded),
		logger.Int("rejected", stats.Rejected),
		logger.Int("failed", stats.Failed),
		logger.Int("empty", stats.Empty),
		logger.Int("refetched", stats.Refetched),
		logger.String("p50", stats.Latencies.P50.String()),
		logger.String("p95", stats.Latencies.P95.String()),
		logger.String("duration", stats.Duration.String()),
	)
	return stats, nil
}

// refetch reads back up to n stored runs, lowest id first, and requires the
// recomputed report to equal the one returned at creation.
func refetch(ctx context.Context, client *HTTPClient, n int, posted map[int64]MatchResponse, stats *Stats) error {
	ids := make([]int64, 0, len(posted))
	for id := range posted {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if n < len(ids) {
		ids = ids[:max(n, 0)]
	}

	for _, id := range ids {
		rep, status, err := client.Report(ctx, id)
		if err != nil {
			return fmt.Errorf("refetch run %d: %w", id, err)
		}
		if status != http.StatusOK {
			return fmt.Errorf("refetch run %d: status %d", id, status)
		}
		if !reflect.DeepEqual(rep, posted[id].Report) {
			return fmt.Errorf("%w: run %d changed between creation and refetch", ErrInconsistentReport, id)
		}
		stats.Refetched++
	}
	return nil
}

func summarize(d []time.Duration) Latencies {
	if len(d) == 0 {
		return Latencies{}
	}
	sort.Slice(d, func(i, j int) bool { return d[i] < d[j] })
	return Latencies{
		P50: d[len(d)/2],
		P95: d[int(float64(len(d)-1)*percentile95)],
		Max: d[len(d)-1],
	}
}
