package main

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/talentmatch/internal/adapters/repository"
	app "github.com/okian/talentmatch/internal/app"
	"github.com/okian/talentmatch/internal/config"
	"github.com/okian/talentmatch/internal/domain/benchmark"
	"github.com/okian/talentmatch/internal/domain/scoring"
	"github.com/okian/talentmatch/internal/seed"
	"github.com/okian/talentmatch/pkg/logger"
)

// openStore returns the configured trait repository. The memory store is
// filled with the deterministic synthetic population.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	if cfg.Store == config.StorePostgres {
		pg, err := connectPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}

	snap := seedGenerator(cfg, cfg.SeedEmployees).Generate()
	logger.Get().Info(ctx, "using memory store with a synthetic population",
		logger.Int("employees", len(snap.Employees)),
		logger.Int64("seed", cfg.SeedRandomSeed),
	)
	return repository.NewMemoryStore(repository.WithPopulation(snap)), nil
}

func connectPostgres(ctx context.Context, cfg *config.Config) (*repository.PostgresStore, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database_url is required")
	}
	return repository.Connect(ctx, cfg.DatabaseURL,
		repository.WithConnectRetries(cfg.DBConnectRetries),
		repository.WithConnectBackoff(
			time.Duration(cfg.DBConnectMinIntervalMS)*time.Millisecond,
			time.Duration(cfg.DBConnectMaxIntervalMS)*time.Millisecond,
		),
	)
}

func seedGenerator(cfg *config.Config, employees int) *seed.Generator {
	return seed.NewGenerator(seed.WithEmployees(employees), seed.WithSeed(cfg.SeedRandomSeed))
}

// newService builds the matching service from configuration.
func newService(cfg *config.Config, store repository.Store) (*app.Service, error) {
	tokenPolicy, err := benchmark.ParseTokenPolicy(cfg.BenchmarkTokenPolicy)
	if err != nil {
		return nil, err
	}
	missingPolicy, err := scoring.ParseMissingPolicy(cfg.MissingTraitPolicy)
	if err != nil {
		return nil, err
	}

	return app.New(
		app.WithLogger(logger.Named("service")),
		app.WithStore(store),
		app.WithTokenPolicy(tokenPolicy),
		app.WithMissingTraitPolicy(missingPolicy),
		app.WithNormalizationRange(cfg.NormalizationRange),
		app.WithTraitRanges(cfg.TraitRanges),
		app.WithTGVWeights(cfg.TGVWeights, cfg.DefaultTGVWeight),
		app.WithExcludeBenchmarks(cfg.ExcludeBenchmarks),
		app.WithTopN(cfg.TopN),
		app.WithHistogramBins(cfg.HistogramBins),
	), nil
}
