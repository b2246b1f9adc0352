// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file and TALENTMATCH_ env vars.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
)

// Store kinds.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the encoder: console or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Store selects the trait repository backend: memory or postgres.
	Store string `koanf:"store"`

	// DatabaseURL is the PostgreSQL connection string used when Store is postgres.
	DatabaseURL string `koanf:"database_url"`

	// DBConnectRetries bounds connection attempts at start-up.
	DBConnectRetries int `koanf:"db_connect_retries"`

	// DBConnectMinIntervalMS and DBConnectMaxIntervalMS bound the backoff between attempts.
	DBConnectMinIntervalMS int `koanf:"db_connect_min_interval_ms"`
	DBConnectMaxIntervalMS int `koanf:"db_connect_max_interval_ms"`

	// NormalizationRange is the full scale used for traits without an explicit range.
	NormalizationRange float64 `koanf:"normalization_range"`

	// TraitRanges overrides the full scale per trait.
	TraitRanges map[string]float64 `koanf:"trait_ranges"`

	// MissingTraitPolicy is exclude or zero.
	MissingTraitPolicy string `koanf:"missing_trait_policy"`

	// BenchmarkTokenPolicy is drop or reject.
	BenchmarkTokenPolicy string `koanf:"benchmark_token_policy"`

	// TGVWeights maps trait-group names to aggregation weights.
	TGVWeights map[string]float64 `koanf:"tgv_weights"`

	// DefaultTGVWeight is used for groups absent from TGVWeights.
	DefaultTGVWeight float64 `koanf:"default_tgv_weight"`

	// ExcludeBenchmarks removes the benchmark employees from the candidate pool.
	ExcludeBenchmarks bool `koanf:"exclude_benchmarks"`

	// TopN is the default size of the report's top table; 0 means unrestricted.
	TopN int `koanf:"top_n"`

	// HistogramBins sets the number of equal-width bins over [0,100].
	HistogramBins int `koanf:"histogram_bins"`

	// MaxReportLimit caps the limit query parameter.
	MaxReportLimit int `koanf:"max_report_limit"`

	// SeedEmployees is the synthetic population size for the memory store and the seed command.
	SeedEmployees int `koanf:"seed_employees"`

	// SeedRandomSeed makes the synthetic population reproducible.
	SeedRandomSeed int64 `koanf:"seed_random_seed"`
}

// New creates a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:               "info",
		LogFormat:              "console",
		Addr:                   ":9080",
		Store:                  StoreMemory,
		DBConnectRetries:       5,
		DBConnectMinIntervalMS: 200,
		DBConnectMaxIntervalMS: 5_000,
		NormalizationRange:     100,
		TraitRanges:            map[string]float64{},
		MissingTraitPolicy:     "exclude",
		BenchmarkTokenPolicy:   "drop",
		TGVWeights:             map[string]float64{},
		DefaultTGVWeight:       1.0,
		TopN:                   10,
		HistogramBins:          20,
		MaxReportLimit:         1_000,
		SeedEmployees:          200,
		SeedRandomSeed:         42,
	}
}
