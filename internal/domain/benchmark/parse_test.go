package benchmark_test

import (
	"errors"
	"testing"

	"github.com/okian/talentmatch/internal/domain/benchmark"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseIDs(t *testing.T) {
	Convey("Given the drop policy", t, func() {
		Convey("When the text mixes valid and malformed tokens", func() {
			ids, err := benchmark.ParseIDs(" 312, abc,335 ,, -4, 0, +7, 12x", benchmark.PolicyDrop)

			Convey("Then only positive integers survive, in order", func() {
				So(err, ShouldBeNil)
				So(ids, ShouldResemble, []int64{312, 335})
			})
		})

		Convey("When the text has no valid token", func() {
			for _, raw := range []string{",", "abc", ""} {
				ids, err := benchmark.ParseIDs(raw, benchmark.PolicyDrop)
				So(err, ShouldBeNil)
				So(ids, ShouldBeEmpty)

				Convey("Then building a set fails for "+raw, func() {
					_, err := benchmark.Parse(raw, benchmark.PolicyDrop)
					So(errors.Is(err, benchmark.ErrInvalidBenchmark), ShouldBeTrue)
				})
			}
		})
	})

	Convey("Given the reject policy", t, func() {
		Convey("When a malformed token is present", func() {
			_, err := benchmark.ParseIDs("312,abc", benchmark.PolicyReject)

			Convey("Then it should fail naming the token", func() {
				var ibe *benchmark.InvalidBenchmarkError
				So(errors.As(err, &ibe), ShouldBeTrue)
				So(ibe.Reason, ShouldEqual, benchmark.ReasonMalformed)
				So(ibe.Token, ShouldEqual, "abc")
				So(err.Error(), ShouldContainSubstring, `"abc"`)
			})
		})

		Convey("When blank tokens are present", func() {
			ids, err := benchmark.ParseIDs("312,,335,", benchmark.PolicyReject)

			Convey("Then they are ignored", func() {
				So(err, ShouldBeNil)
				So(ids, ShouldResemble, []int64{312, 335})
			})
		})
	})
}

func TestParseTokenPolicy(t *testing.T) {
	Convey("Given policy names", t, func() {
		p, err := benchmark.ParseTokenPolicy("")
		So(err, ShouldBeNil)
		So(p, ShouldEqual, benchmark.PolicyDrop)

		p, err = benchmark.ParseTokenPolicy(" Reject ")
		So(err, ShouldBeNil)
		So(p, ShouldEqual, benchmark.PolicyReject)

		_, err = benchmark.ParseTokenPolicy("keep")
		So(err, ShouldNotBeNil)
	})
}
