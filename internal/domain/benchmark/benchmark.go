// Package benchmark builds the target profile a vacancy is matched against.
package benchmark

import (
	"github.com/ecodeclub/ekit/slice"

	"github.com/okian/talentmatch/internal/domain/model"
)

// MaxSize is the largest accepted benchmark set.
const MaxSize = 3

// Set is an ordered, non-empty set of at most MaxSize distinct employee ids.
type Set struct {
	ids []int64
}

// NewSet validates the shape of ids. Whether each id exists is checked by Build.
func NewSet(ids []int64) (Set, error) {
	switch {
	case len(ids) == 0:
		return Set{}, &InvalidBenchmarkError{Reason: ReasonEmpty}
	case len(ids) > MaxSize:
		return Set{}, &InvalidBenchmarkError{Reason: ReasonOversized, IDs: append([]int64(nil), ids...)}
	}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return Set{}, &InvalidBenchmarkError{Reason: ReasonDuplicate, IDs: []int64{id}}
		}
		seen[id] = struct{}{}
	}
	return Set{ids: append([]int64(nil), ids...)}, nil
}

// Parse runs ParseIDs and NewSet in one step.
func Parse(raw string, policy TokenPolicy) (Set, error) {
	ids, err := ParseIDs(raw, policy)
	if err != nil {
		return Set{}, err
	}
	return NewSet(ids)
}

// IDs returns a copy of the ids in input order.
func (s Set) IDs() []int64 { return append([]int64(nil), s.ids...) }

// Len is the number of benchmark employees.
func (s Set) Len() int { return len(s.ids) }

// Contains reports whether id is a benchmark employee.
func (s Set) Contains(id int64) bool { return slice.Contains(s.ids, id) }

// Build synthesizes the target profile: for every trait observed by at least
// one benchmark employee, the mean of the observed values. Missing
// observations are not zero-filled, so a group no benchmark observed is absent.
func Build(set Set, snap model.Snapshot) (model.TargetProfile, error) {
	unknown := slice.FilterMap(set.ids, func(_ int, id int64) (int64, bool) {
		_, ok := snap.Employee(id)
		return id, !ok
	})
	if len(unknown) > 0 {
		return model.TargetProfile{}, &InvalidBenchmarkError{Reason: ReasonUnknown, IDs: unknown}
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	groups := make(map[string]string)
	// Benchmarks are visited in set order so float sums are reproducible.
	for _, id := range set.ids {
		for _, obs := range snap.Observations[id] {
			sums[obs.Trait] += obs.Value
			counts[obs.Trait]++
			groups[obs.Trait] = obs.Group
		}
	}
	if len(sums) == 0 {
		return model.TargetProfile{}, &InvalidBenchmarkError{Reason: ReasonNoObservations, IDs: set.IDs()}
	}

	values := make(map[string]float64, len(sums))
	for trait, sum := range sums {
		values[trait] = sum / float64(counts[trait])
	}
	return model.NewTargetProfile(values, groups), nil
}
