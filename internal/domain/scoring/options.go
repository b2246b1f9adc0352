package scoring

import (
	"fmt"
	"strings"
)

// MissingPolicy decides how a profile trait the candidate lacks is treated.
type MissingPolicy string

// Missing-trait policies.
const (
	// MissingExclude skips absent traits. This can reward candidates with
	// sparse data, since only observed traits are compared.
	MissingExclude MissingPolicy = "exclude"
	// MissingZero scores absent traits as similarity 0 in their group.
	MissingZero MissingPolicy = "zero"
)

// ParseMissingPolicy maps configuration text to a MissingPolicy. Empty means exclude.
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch MissingPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", MissingExclude:
		return MissingExclude, nil
	case MissingZero:
		return MissingZero, nil
	default:
		return "", fmt.Errorf("unknown missing trait policy %q", s)
	}
}

// Option applies a configuration option to the TraitScorer.
type Option func(*TraitScorer)

// WithNormalizationRange sets the full scale used for traits without a range.
func WithNormalizationRange(r float64) Option {
	return func(s *TraitScorer) {
		if r > 0 {
			s.defaultRange = r
		}
	}
}

// WithTraitRanges sets per-trait full scales from a configuration map.
// These win over ranges found in the trait catalog.
func WithTraitRanges(ranges map[string]float64) Option {
	return func(s *TraitScorer) {
		// Copy the map to avoid external modifications
		s.overrides = make(map[string]float64, len(ranges))
		for trait, r := range ranges {
			if r > 0 {
				s.overrides[trait] = r
			}
		}
	}
}

// WithMissingPolicy sets the missing-trait policy.
func WithMissingPolicy(p MissingPolicy) Option {
	return func(s *TraitScorer) {
		if p == MissingExclude || p == MissingZero {
			s.missing = p
		}
	}
}
