package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/talentmatch/internal/loadtest"
)

// Default load test constants.
const (
	defaultRuns    = 200
	defaultWorkers = 2 // multiplier for runtime.NumCPU()
	defaultTimeout = 30 * time.Second
)

var loadCfg loadtest.Config

var loadtestCmd = &cobra.Command{
	Use:   "loadtest",
	Short: "Submit generated vacancies to a running server and verify the reports",
	RunE: func(cmd *cobra.Command, _ []string) error {
		stats, err := loadtest.Run(cmd.Context(), loadCfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(),
			"submitted %d, succeeded %d, rejected %d, failed %d, empty %d, refetched %d\np50 %s, p95 %s, max %s, total %s\n",
			stats.Submitted, stats.Succeeded, stats.Rejected, stats.Failed, stats.Empty, stats.Refetched,
			stats.Latencies.P50, stats.Latencies.P95, stats.Latencies.Max, stats.Duration)
		if stats.Failed > 0 {
			return fmt.Errorf("%d submissions failed", stats.Failed)
		}
		return nil
	},
}

func init() {
	f := loadtestCmd.Flags()
	f.StringVar(&loadCfg.BaseURL, "url", "http://localhost:9080", "base URL of the service")
	f.IntVar(&loadCfg.Runs, "runs", defaultRuns, "number of vacancies to submit")
	f.IntVar(&loadCfg.Workers, "workers", runtime.NumCPU()*defaultWorkers, "number of concurrent workers")
	f.DurationVar(&loadCfg.Timeout, "timeout", defaultTimeout, "HTTP request timeout")
	f.Int64Var(&loadCfg.MinID, "min-id", 100, "lowest benchmark employee id")
	f.Int64Var(&loadCfg.MaxID, "max-id", 299, "highest benchmark employee id")
	f.IntVar(&loadCfg.Refetch, "refetch", 10, "number of reports to fetch again and compare")
	f.Int64Var(&loadCfg.Seed, "seed", 1, "seed for vacancy generation")
	rootCmd.AddCommand(loadtestCmd)
}
