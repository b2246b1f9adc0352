package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/talentmatch/pkg/logger"
)

var (
	seedEmployees int
	seedMigrate   bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the PostgreSQL population with a synthetic one",
	Long: `Generate a deterministic synthetic population (employees, trait catalog
and trait scores) and load it into PostgreSQL, replacing what is there.
Recorded vacancies are kept.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedEmployees, "employees", 0, "population size (0 uses seed_employees from config)")
	seedCmd.Flags().BoolVar(&seedMigrate, "migrate", true, "apply the schema first")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	store, err := connectPostgres(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if seedMigrate {
		if err := store.Migrate(ctx); err != nil {
			return err
		}
	}

	n := seedEmployees
	if n <= 0 {
		n = cfg.SeedEmployees
	}
	snap := seedGenerator(cfg, n).Generate()
	if err := store.Import(ctx, snap); err != nil {
		return err
	}

	logger.Get().Info(ctx, "population seeded",
		logger.Int("employees", len(snap.Employees)),
		logger.Int("traits", len(snap.Scales)),
		logger.Int64("seed", cfg.SeedRandomSeed),
	)
	return nil
}
