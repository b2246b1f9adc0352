package service

import (
	"github.com/okian/talentmatch/internal/adapters/repository"
	"github.com/okian/talentmatch/internal/domain/benchmark"
	"github.com/okian/talentmatch/internal/domain/scoring"
	"github.com/okian/talentmatch/pkg/logger"
)

// Option is a functional option for configuring the service.
type Option func(*Service)

// WithStore sets the trait repository.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTokenPolicy sets how malformed benchmark tokens are handled.
func WithTokenPolicy(p benchmark.TokenPolicy) Option {
	return func(s *Service) {
		if p != "" {
			s.tokenPolicy = p
		}
	}
}

// WithMissingTraitPolicy sets how traits a candidate lacks are scored.
func WithMissingTraitPolicy(p scoring.MissingPolicy) Option {
	return func(s *Service) {
		if p != "" {
			s.missingPolicy = p
		}
	}
}

// WithNormalizationRange sets the default full scale of a trait.
func WithNormalizationRange(r float64) Option {
	return func(s *Service) {
		if r > 0 {
			s.normalizationRange = r
		}
	}
}

// WithTraitRanges sets per-trait full scales.
func WithTraitRanges(ranges map[string]float64) Option {
	return func(s *Service) {
		s.traitRanges = ranges
	}
}

// WithTGVWeights sets the aggregation weight per TGV and the fallback weight.
func WithTGVWeights(weights map[string]float64, defaultWeight float64) Option {
	return func(s *Service) {
		s.tgvWeights = weights
		if defaultWeight > 0 {
			s.defaultWeight = defaultWeight
		}
	}
}

// WithExcludeBenchmarks removes benchmark employees from the candidate pool.
func WithExcludeBenchmarks(exclude bool) Option {
	return func(s *Service) {
		s.excludeBenchmarks = exclude
	}
}

// WithTopN sets the default size of the report's top table.
func WithTopN(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.topN = n
		}
	}
}

// WithHistogramBins sets the histogram resolution.
func WithHistogramBins(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.histogramBins = n
		}
	}
}
