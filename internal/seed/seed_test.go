package seed_test

import (
	"testing"

	"github.com/okian/talentmatch/internal/seed"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerate(t *testing.T) {
	Convey("Given a generator with a fixed seed", t, func() {
		g := seed.NewGenerator(seed.WithEmployees(30), seed.WithSeed(7))

		Convey("When generating twice", func() {
			a := g.Generate()
			b := g.Generate()

			Convey("Then the populations are identical", func() {
				So(a, ShouldResemble, b)
			})

			Convey("Then ids are sequential and every trait is in the catalog", func() {
				So(len(a.Employees), ShouldEqual, 30)
				So(a.Employees[0].ID, ShouldEqual, 100)
				So(a.Employees[29].ID, ShouldEqual, 129)
				for _, list := range a.Observations {
					for _, o := range list {
						sc, ok := a.Scales[o.Trait]
						So(ok, ShouldBeTrue)
						So(o.Group, ShouldEqual, sc.Group)
						So(o.Value, ShouldBeBetweenOrEqual, 0, sc.Range)
					}
				}
			})
		})

		Convey("When the seed changes", func() {
			other := seed.NewGenerator(seed.WithEmployees(30), seed.WithSeed(8)).Generate()

			Convey("Then the population differs", func() {
				So(other, ShouldNotResemble, g.Generate())
			})
		})
	})

	Convey("Given a missing rate of zero", t, func() {
		snap := seed.NewGenerator(seed.WithEmployees(5), seed.WithMissingRate(0)).Generate()

		Convey("Then every employee observes every trait", func() {
			for _, e := range snap.Employees {
				So(len(snap.Observations[e.ID]), ShouldEqual, len(seed.Catalog))
			}
		})
	})
}
