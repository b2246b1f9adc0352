package model_test

import (
	"testing"

	model "github.com/okian/talentmatch/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestTargetProfile(t *testing.T) {
	convey.Convey("Given a target profile built from maps", t, func() {
		values := map[string]float64{"b": 90, "a": 75, "c": 40}
		groups := map[string]string{"a": "Drive", "b": "Drive", "c": "Analytical"}
		p := model.NewTargetProfile(values, groups)

		convey.Convey("Then traits should be sorted and groups deduplicated", func() {
			convey.So(p.Traits(), convey.ShouldResemble, []string{"a", "b", "c"})
			convey.So(p.Groups(), convey.ShouldResemble, []string{"Analytical", "Drive"})
			convey.So(p.Len(), convey.ShouldEqual, 3)
			convey.So(p.Group("c"), convey.ShouldEqual, "Analytical")
		})

		convey.Convey("When the source maps are mutated afterwards", func() {
			values["a"] = 1
			values["z"] = 5

			convey.Convey("Then the profile should not change", func() {
				v, ok := p.Value("a")
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(v, convey.ShouldEqual, 75)
				_, ok = p.Value("z")
				convey.So(ok, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the returned trait slice is mutated", func() {
			traits := p.Traits()
			traits[0] = "zzz"

			convey.Convey("Then the profile keeps its own copy", func() {
				convey.So(p.Traits()[0], convey.ShouldEqual, "a")
			})
		})
	})
}

func TestSnapshotEmployee(t *testing.T) {
	convey.Convey("Given a snapshot with employees ordered by id", t, func() {
		s := model.Snapshot{Employees: []model.Employee{
			{ID: 3, Name: "Ana"},
			{ID: 7, Name: "Budi"},
			{ID: 12, Name: "Citra"},
		}}

		convey.Convey("Then present ids resolve and absent ids do not", func() {
			e, ok := s.Employee(7)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(e.Name, convey.ShouldEqual, "Budi")

			_, ok = s.Employee(8)
			convey.So(ok, convey.ShouldBeFalse)
			_, ok = s.Employee(100)
			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}
