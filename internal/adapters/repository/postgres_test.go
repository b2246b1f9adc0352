package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConnect_Failure(t *testing.T) {
	Convey("Given an unparsable database url", t, func() {
		ctx := context.Background()

		Convey("When connecting without retries", func() {
			_, err := Connect(ctx, "postgres://%zz", WithConnectRetries(0))

			Convey("Then a DataSourceError is returned", func() {
				So(errors.Is(err, ErrDataSource), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "connect")
			})
		})

		Convey("When connecting with a short backoff", func() {
			start := time.Now()
			_, err := Connect(ctx, "postgres://%zz",
				WithConnectRetries(2),
				WithConnectBackoff(time.Millisecond, 2*time.Millisecond),
			)

			Convey("Then it gives up after the retries", func() {
				So(errors.Is(err, ErrDataSource), ShouldBeTrue)
				So(time.Since(start), ShouldBeLessThan, 5*time.Second)
			})
		})
	})
}

func TestSchema(t *testing.T) {
	Convey("Given the embedded schema", t, func() {
		Convey("Then it defines every table the store reads", func() {
			for _, table := range []string{"employees", "trait_catalog", "trait_scores", "talent_benchmarks"} {
				So(strings.Contains(schemaSQL, "CREATE TABLE IF NOT EXISTS "+table), ShouldBeTrue)
			}
			So(schemaSQL, ShouldContainSubstring, "job_vacancy_id       BIGSERIAL")
		})
	})
}

func TestJoinIDs(t *testing.T) {
	Convey("Given benchmark ids", t, func() {
		So(joinIDs([]int64{312, 335}), ShouldEqual, "312,335")
		So(joinIDs(nil), ShouldEqual, "")
	})
}
