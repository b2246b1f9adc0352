package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/talentmatch/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.Store, convey.ShouldEqual, config.StoreMemory)
			convey.So(cfg.NormalizationRange, convey.ShouldEqual, 100)
			convey.So(cfg.MissingTraitPolicy, convey.ShouldEqual, "exclude")
			convey.So(cfg.BenchmarkTokenPolicy, convey.ShouldEqual, "drop")
			convey.So(cfg.DefaultTGVWeight, convey.ShouldEqual, 1.0)
			convey.So(cfg.TopN, convey.ShouldEqual, 10)
			convey.So(cfg.HistogramBins, convey.ShouldEqual, 20)
			convey.So(cfg.ExcludeBenchmarks, convey.ShouldBeFalse)
		})

		convey.Convey("Then the defaults should validate", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs that break one rule each", t, func() {
		cases := map[string]func(c *config.Config){
			"empty addr":    func(c *config.Config) { c.Addr = "" },
			"unknown store": func(c *config.Config) { c.Store = "redis" },
			"postgres without url": func(c *config.Config) {
				c.Store = config.StorePostgres
				c.DatabaseURL = ""
			},
			"unknown missing policy": func(c *config.Config) { c.MissingTraitPolicy = "impute" },
			"unknown token policy":   func(c *config.Config) { c.BenchmarkTokenPolicy = "keep" },
			"zero range":             func(c *config.Config) { c.NormalizationRange = 0 },
			"zero bins":              func(c *config.Config) { c.HistogramBins = 0 },
			"negative top":           func(c *config.Config) { c.TopN = -1 },
			"unknown log format":     func(c *config.Config) { c.LogFormat = "xml" },
			"bad trait range":        func(c *config.Config) { c.TraitRanges = map[string]float64{"grit": -5} },
		}

		for name, mutate := range cases {
			cfg := config.New(context.Background())
			mutate(cfg)

			convey.Convey("When validating "+name, func() {
				err := cfg.Validate()

				convey.Convey("Then it should wrap ErrInvalidConfig", func() {
					convey.So(err, convey.ShouldNotBeNil)
					convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				})
			})
		}
	})
}
