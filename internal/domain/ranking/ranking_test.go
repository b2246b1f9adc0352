package ranking_test

import (
	"testing"

	"github.com/okian/talentmatch/internal/domain/model"
	"github.com/okian/talentmatch/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAggregate(t *testing.T) {
	Convey("Given a default aggregator", t, func() {
		agg := ranking.NewAggregator()

		Convey("Then the final rate is the unweighted mean", func() {
			So(agg.Aggregate(map[string]float64{"Drive": 80, "Focus": 60}), ShouldEqual, 70)
		})

		Convey("Then all 100s aggregate to 100", func() {
			So(agg.Aggregate(map[string]float64{"a": 100, "b": 100, "c": 100}), ShouldEqual, 100)
		})

		Convey("Then an empty input aggregates to 0", func() {
			So(agg.Aggregate(nil), ShouldEqual, 0)
		})
	})

	Convey("Given an explicit weight table", t, func() {
		agg := ranking.NewAggregator(ranking.WithTGVWeightsFromConfig(map[string]float64{
			"Drive":   3,
			"Focus":   1,
			"Ignored": 0,
		}, 2))

		Convey("When every group is present", func() {
			rate := agg.Aggregate(map[string]float64{"Drive": 80, "Focus": 40, "Craft": 100})

			Convey("Then weights apply, unknown groups take the default", func() {
				// (3*80 + 1*40 + 2*100) / 6
				So(rate, ShouldEqual, 80)
			})
		})

		Convey("When a group is missing", func() {
			rate := agg.Aggregate(map[string]float64{"Drive": 80})

			Convey("Then weights are renormalized over present groups", func() {
				So(rate, ShouldEqual, 80)
			})
		})

		Convey("Then non-positive weights fall back to the default", func() {
			So(agg.Weight("Ignored"), ShouldEqual, 2)
			So(agg.Weight("Drive"), ShouldEqual, 3)
		})
	})

	Convey("Given scores to apply", t, func() {
		scores := []model.CandidateScore{
			{EmployeeID: 1, GroupScores: map[string]float64{"a": 50, "b": 100}},
			{EmployeeID: 2, GroupScores: map[string]float64{"a": 20}},
		}
		ranking.NewAggregator().Apply(scores)

		Convey("Then FinalRate is filled in place", func() {
			So(scores[0].FinalRate, ShouldEqual, 75)
			So(scores[1].FinalRate, ShouldEqual, 20)
		})
	})
}

func TestRank(t *testing.T) {
	Convey("Given unordered candidates with ties", t, func() {
		in := []model.CandidateScore{
			{EmployeeID: 9, FinalRate: 70},
			{EmployeeID: 3, FinalRate: 90},
			{EmployeeID: 5, FinalRate: 70},
			{EmployeeID: 1, FinalRate: 10},
			{EmployeeID: 4, FinalRate: 70.0000000000001},
		}

		Convey("When ranked", func() {
			out := ranking.Rank(in)

			Convey("Then rate is descending and ties break by id ascending", func() {
				ids := make([]int64, len(out))
				for i, c := range out {
					ids[i] = c.EmployeeID
				}
				So(ids, ShouldResemble, []int64{3, 4, 5, 9, 1})
			})

			Convey("Then the input slice is untouched", func() {
				So(in[0].EmployeeID, ShouldEqual, 9)
			})

			Convey("Then ranking again yields the same sequence", func() {
				So(ranking.Rank(in), ShouldResemble, out)
				So(ranking.Rank(out), ShouldResemble, out)
			})
		})
	})

	Convey("Given Less", t, func() {
		So(ranking.Less(80, 2, 70, 1), ShouldBeTrue)
		So(ranking.Less(70, 1, 70, 2), ShouldBeTrue)
		So(ranking.Less(70, 2, 70, 1), ShouldBeFalse)
	})
}
