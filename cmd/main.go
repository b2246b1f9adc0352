// Package main provides the talentmatch command line: the HTTP server and
// one-shot matching, migration and seeding commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/okian/talentmatch/internal/config"
	"github.com/okian/talentmatch/pkg/logger"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:               "talentmatch",
	Short:             "Talent matching engine",
	Long:              "talentmatch ranks employees against a vacancy using the trait profile of up to three benchmark employees.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (defaults to $TALENTMATCH_CONFIG)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Only the custom registry is exposed; keep the default one empty.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// setup loads configuration and initializes logging for every command.
// Only serve logs to stdout; the other commands keep stdout for their output.
func setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(ctx, configPath)
	} else {
		cfg, err = config.Load(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	output := "stderr"
	if cmd.Name() == serveCmd.Name() {
		output = "stdout"
	}
	if err := logger.Init(logger.WithJSON(cfg.LogFormat == "json"), logger.WithOutputPaths(output)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return nil
}
