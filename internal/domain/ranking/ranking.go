// Package ranking folds per-group sub-scores into a final match rate and
// orders candidates.
//
// Ordering: rate DESC, then employee id ASC. Rates are compared in fixed
// point so that sums accumulated in different orders still tie.
package ranking

import (
	"math"
	"sort"

	"github.com/ecodeclub/ekit/mapx"

	"github.com/okian/talentmatch/internal/domain/model"
)

const (
	defaultWeight = 1.0
	maxRate       = 100
	// rateScale keeps 9 decimal places of a 0-100 rate.
	rateScale = 1_000_000_000
)

type rateFP int64

func toFixedPoint(x float64) rateFP {
	if math.IsNaN(x) {
		return 0
	}
	return rateFP(math.Round(x * rateScale))
}

// CompareRates returns -1, 0 or 1 as a is below, equal to or above b.
func CompareRates(a, b float64) int {
	fa, fb := toFixedPoint(a), toFixedPoint(b)
	switch {
	case fa < fb:
		return -1
	case fa > fb:
		return 1
	}
	return 0
}

// Less reports whether (aRate, aID) ranks before (bRate, bID).
func Less(aRate float64, aID int64, bRate float64, bID int64) bool {
	if c := CompareRates(aRate, bRate); c != 0 {
		return c > 0 // higher rate ranks earlier
	}
	return aID < bID // tie-breaker by id asc
}

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithTGVWeightsFromConfig sets group weights from a configuration map.
// Non-positive entries are dropped and fall back to the default weight.
func WithTGVWeightsFromConfig(weights map[string]float64, defaultW float64) Option {
	return func(a *Aggregator) {
		// Copy the weights map to avoid external modifications
		a.weights = make(map[string]float64, len(weights))
		for group, w := range weights {
			if w > 0 {
				a.weights[group] = w
			}
		}
		if defaultW > 0 {
			a.defaultWeight = defaultW
		}
	}
}

// Aggregator computes final match rates.
type Aggregator struct {
	weights       map[string]float64
	defaultWeight float64
}

// NewAggregator creates an aggregator. Without options every group weighs the
// same and the final rate is the plain mean of the sub-scores.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		weights:       make(map[string]float64),
		defaultWeight: defaultWeight,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Weight returns the weight of group.
func (a *Aggregator) Weight(group string) float64 {
	if w, ok := a.weights[group]; ok {
		return w
	}
	return a.defaultWeight
}

// Aggregate is the weighted mean of the sub-scores present. Weights are
// renormalized over those groups only, so a missing group does not lower the
// rate. An empty input yields 0.
func (a *Aggregator) Aggregate(groupScores map[string]float64) float64 {
	groups := mapx.Keys(groupScores)
	sort.Strings(groups)

	var num, den float64
	for _, g := range groups {
		w := a.Weight(g)
		num += w * groupScores[g]
		den += w
	}
	if den == 0 {
		return 0
	}
	return math.Max(0, math.Min(maxRate, num/den))
}

// Apply sets FinalRate on every score in place.
func (a *Aggregator) Apply(scores []model.CandidateScore) {
	for i := range scores {
		scores[i].FinalRate = a.Aggregate(scores[i].GroupScores)
	}
}

// Rank returns a sorted copy of scores. The order is total, so equal input
// always yields identical output.
func Rank(scores []model.CandidateScore) []model.CandidateScore {
	out := make([]model.CandidateScore, len(scores))
	copy(out, scores)
	sort.SliceStable(out, func(i, j int) bool {
		return Less(out[i].FinalRate, out[i].EmployeeID, out[j].FinalRate, out[j].EmployeeID)
	})
	return out
}
