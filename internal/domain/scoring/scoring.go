// Package scoring compares a candidate's traits with a target profile.
package scoring

import (
	"math"

	"github.com/okian/talentmatch/internal/domain/model"
)

const (
	defaultRange = 100
	percent      = 100
)

// Scorer computes one candidate's per-group sub-scores.
type Scorer interface {
	Score(candidateID int64, profile model.TargetProfile, obs []model.TraitObservation) (model.CandidateScore, error)
}

// TraitScorer implements Scorer with a normalized absolute-deviation similarity.
type TraitScorer struct {
	defaultRange float64
	overrides    map[string]float64 // from configuration
	catalog      map[string]float64 // from the trait catalog of the current snapshot
	missing      MissingPolicy
}

// NewTraitScorer creates a scorer with configuration options.
func NewTraitScorer(opts ...Option) *TraitScorer {
	s := &TraitScorer{
		defaultRange: defaultRange,
		overrides:    make(map[string]float64),
		catalog:      make(map[string]float64),
		missing:      MissingExclude,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithCatalog returns a copy of s that also knows the ranges from a snapshot's
// trait catalog. Configured overrides keep precedence.
func (s *TraitScorer) WithCatalog(scales map[string]model.TraitScale) *TraitScorer {
	c := *s
	c.catalog = make(map[string]float64, len(scales))
	for trait, sc := range scales {
		if sc.Range > 0 {
			c.catalog[trait] = sc.Range
		}
	}
	return &c
}

// Policy reports the missing-trait policy in effect.
func (s *TraitScorer) Policy() MissingPolicy { return s.missing }

// Range returns the full scale used to normalize deviations for trait.
func (s *TraitScorer) Range(trait string) float64 {
	if r, ok := s.overrides[trait]; ok {
		return r
	}
	if r, ok := s.catalog[trait]; ok {
		return r
	}
	return s.defaultRange
}

// Similarity is 1 - min(1, |candidate-target| / rng), in [0,1].
func Similarity(candidate, target, rng float64) float64 {
	if rng <= 0 {
		rng = defaultRange
	}
	d := math.Abs(candidate-target) / rng
	return 1 - math.Min(1, d)
}

// Score compares obs with profile. Groups with no scorable trait are left out
// of GroupScores. FinalRate is filled in by the ranking step.
func (s *TraitScorer) Score(candidateID int64, profile model.TargetProfile, obs []model.TraitObservation) (model.CandidateScore, error) {
	values := make(map[string]float64, len(obs))
	for _, o := range obs {
		values[o.Trait] = o.Value
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	overlap := 0
	// Traits() is sorted, which keeps the float sums reproducible.
	for _, trait := range profile.Traits() {
		target, _ := profile.Value(trait)
		group := profile.Group(trait)
		v, ok := values[trait]
		if !ok {
			if s.missing == MissingZero {
				counts[group]++
			}
			continue
		}
		overlap++
		sums[group] += Similarity(v, target, s.Range(trait))
		counts[group]++
	}

	if overlap == 0 {
		return model.CandidateScore{}, &NoOverlapError{EmployeeID: candidateID}
	}

	groups := make(map[string]float64, len(counts))
	for g, n := range counts {
		groups[g] = sums[g] / float64(n) * percent
	}

	return model.CandidateScore{
		EmployeeID:   candidateID,
		GroupScores:  groups,
		TraitsScored: overlap,
	}, nil
}
