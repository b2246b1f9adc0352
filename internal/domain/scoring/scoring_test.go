package scoring_test

import (
	"errors"
	"testing"

	"github.com/okian/talentmatch/internal/domain/model"
	scoring "github.com/okian/talentmatch/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func profileFixture() model.TargetProfile {
	return model.NewTargetProfile(
		map[string]float64{"A": 75, "B": 90, "C": 40},
		map[string]string{"A": "Drive", "B": "Drive", "C": "Analytical"},
	)
}

func obs(id int64, pairs ...interface{}) []model.TraitObservation {
	out := make([]model.TraitObservation, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, model.TraitObservation{EmployeeID: id, Trait: pairs[i].(string), Value: pairs[i+1].(float64)})
	}
	return out
}

func TestSimilarity(t *testing.T) {
	Convey("Given a normalization range of 100", t, func() {
		Convey("Then an exact match scores 1", func() {
			So(scoring.Similarity(75, 75, 100), ShouldEqual, 1.0)
		})
		Convey("Then a deviation of 50 scores 0.5", func() {
			So(scoring.Similarity(25, 75, 100), ShouldEqual, 0.5)
		})
		Convey("Then deviations beyond the range clamp to 0", func() {
			So(scoring.Similarity(0, 100, 100), ShouldEqual, 0.0)
			So(scoring.Similarity(-50, 100, 100), ShouldEqual, 0.0)
		})
		Convey("Then a non-positive range falls back to 100", func() {
			So(scoring.Similarity(25, 75, 0), ShouldEqual, 0.5)
		})
	})
}

func TestTraitScorer_Score(t *testing.T) {
	Convey("Given a default scorer", t, func() {
		scorer := scoring.NewTraitScorer()
		profile := profileFixture()

		Convey("When the candidate is identical to the profile", func() {
			cs, err := scorer.Score(1, profile, obs(1, "A", 75.0, "B", 90.0, "C", 40.0))

			Convey("Then every group scores 100", func() {
				So(err, ShouldBeNil)
				So(cs.GroupScores["Drive"], ShouldEqual, 100)
				So(cs.GroupScores["Analytical"], ShouldEqual, 100)
				So(cs.TraitsScored, ShouldEqual, 3)
			})
		})

		Convey("When the candidate has A=25 only", func() {
			cs, err := scorer.Score(2, profile, obs(2, "A", 25.0))

			Convey("Then Drive is 50 and Analytical is excluded", func() {
				So(err, ShouldBeNil)
				So(cs.GroupScores["Drive"], ShouldEqual, 50)
				_, ok := cs.GroupScores["Analytical"]
				So(ok, ShouldBeFalse)
				So(cs.TraitsScored, ShouldEqual, 1)
			})
		})

		Convey("When the candidate shares no trait", func() {
			_, err := scorer.Score(3, profile, obs(3, "Z", 10.0))

			Convey("Then a NoOverlapError names the candidate", func() {
				var noe *scoring.NoOverlapError
				So(errors.As(err, &noe), ShouldBeTrue)
				So(noe.EmployeeID, ShouldEqual, 3)
				So(errors.Is(err, scoring.ErrNoOverlap), ShouldBeTrue)
			})
		})
	})

	Convey("Given the zero missing-trait policy", t, func() {
		scorer := scoring.NewTraitScorer(scoring.WithMissingPolicy(scoring.MissingZero))

		Convey("When the candidate lacks B and C", func() {
			cs, err := scorer.Score(4, profileFixture(), obs(4, "A", 75.0))

			Convey("Then missing traits pull their groups down", func() {
				So(err, ShouldBeNil)
				So(cs.GroupScores["Drive"], ShouldEqual, 50)
				So(cs.GroupScores["Analytical"], ShouldEqual, 0)
				So(scorer.Policy(), ShouldEqual, scoring.MissingZero)
			})
		})

		Convey("When the candidate shares no trait", func() {
			_, err := scorer.Score(5, profileFixture(), nil)

			Convey("Then the candidate is still excluded", func() {
				So(errors.Is(err, scoring.ErrNoOverlap), ShouldBeTrue)
			})
		})
	})
}

func TestTraitScorer_Ranges(t *testing.T) {
	Convey("Given configured and catalog ranges", t, func() {
		scorer := scoring.NewTraitScorer(
			scoring.WithNormalizationRange(50),
			scoring.WithTraitRanges(map[string]float64{"A": 10, "bad": -1}),
		).WithCatalog(map[string]model.TraitScale{
			"A": {Trait: "A", Range: 9},
			"B": {Trait: "B", Range: 5},
		})

		Convey("Then configuration wins, then the catalog, then the default", func() {
			So(scorer.Range("A"), ShouldEqual, 10)
			So(scorer.Range("B"), ShouldEqual, 5)
			So(scorer.Range("C"), ShouldEqual, 50)
			So(scorer.Range("bad"), ShouldEqual, 50)
		})

		Convey("When scoring with a small scale", func() {
			profile := model.NewTargetProfile(map[string]float64{"B": 4}, map[string]string{"B": "Papi"})
			cs, err := scorer.Score(1, profile, obs(1, "B", 3.0))

			Convey("Then the deviation is normalized by that scale", func() {
				So(err, ShouldBeNil)
				So(cs.GroupScores["Papi"], ShouldAlmostEqual, 80, 1e-9)
			})
		})
	})
}

func TestParseMissingPolicy(t *testing.T) {
	Convey("Given policy names", t, func() {
		p, err := scoring.ParseMissingPolicy("")
		So(err, ShouldBeNil)
		So(p, ShouldEqual, scoring.MissingExclude)

		p, err = scoring.ParseMissingPolicy("ZERO")
		So(err, ShouldBeNil)
		So(p, ShouldEqual, scoring.MissingZero)

		_, err = scoring.ParseMissingPolicy("impute")
		So(err, ShouldNotBeNil)
	})
}
