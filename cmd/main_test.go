package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	app "github.com/okian/talentmatch/internal/app"
	"github.com/okian/talentmatch/internal/config"
	"github.com/okian/talentmatch/internal/domain/model"
	"github.com/okian/talentmatch/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithOutputPaths("stderr")); err != nil {
		panic(err)
	}
}

func startedService(ctx context.Context, c *config.Config) *app.Service {
	store, err := openStore(ctx, c)
	convey.So(err, convey.ShouldBeNil)
	svc, err := newService(c, store)
	convey.So(err, convey.ShouldBeNil)
	convey.So(svc.Start(ctx), convey.ShouldBeNil)
	return svc
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		ctx := context.Background()

		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("TALENTMATCH_ADDR", ":8080")
			_ = os.Setenv("TALENTMATCH_SEED_EMPLOYEES", "30")
			defer func() {
				_ = os.Unsetenv("TALENTMATCH_ADDR")
				_ = os.Unsetenv("TALENTMATCH_SEED_EMPLOYEES")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				c, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(c.Addr, convey.ShouldEqual, ":8080")
				convey.So(c.SeedEmployees, convey.ShouldEqual, 30)
			})
		})

		convey.Convey("When building the service from defaults", func() {
			c := config.New(ctx)
			c.SeedEmployees = 25
			svc := startedService(ctx, c)
			defer svc.Stop()

			convey.Convey("Then the configured policies are applied", func() {
				stats := svc.GetStats()
				convey.So(stats["started"], convey.ShouldEqual, true)
				convey.So(stats["tokenPolicy"], convey.ShouldEqual, "drop")
				convey.So(stats["missingTraitPolicy"], convey.ShouldEqual, "exclude")
			})
		})

		convey.Convey("When a policy in the config is unknown", func() {
			c := config.New(ctx)
			c.MissingTraitPolicy = "impute"
			store, err := openStore(ctx, c)
			convey.So(err, convey.ShouldBeNil)
			_, err = newService(c, store)

			convey.Convey("Then the service is not built", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the postgres store has no url", func() {
			c := config.New(ctx)
			c.Store = config.StorePostgres
			_, err := openStore(ctx, c)

			convey.Convey("Then opening fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestServeMux(t *testing.T) {
	convey.Convey("Given the serve mux over a synthetic population", t, func() {
		ctx := context.Background()
		c := config.New(ctx)
		c.SeedEmployees = 40
		svc := startedService(ctx, c)
		defer svc.Stop()
		mux := newMux(ctx, svc, c.MaxReportLimit)

		convey.Convey("When a vacancy is posted", func() {
			body := `{"role_name":"Data Analyst","job_level":"Senior","competencies":["SQL"],"benchmark_ids":"100,101","limit":3}`
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("POST", "/vacancies", strings.NewReader(body)))

			convey.Convey("Then a ranked report is returned", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusCreated)
				var resp struct {
					RunID  int64        `json:"run_id"`
					Report model.Report `json:"report"`
				}
				convey.So(json.NewDecoder(w.Body).Decode(&resp), convey.ShouldBeNil)
				convey.So(resp.RunID, convey.ShouldEqual, 1)
				convey.So(resp.Report.Top, convey.ShouldHaveLength, 3)
				convey.So(resp.Report.Rows[0].Rank, convey.ShouldEqual, 1)
			})

			convey.Convey("Then the stored run can be fetched again", func() {
				w2 := httptest.NewRecorder()
				mux.ServeHTTP(w2, httptest.NewRequest("GET", "/vacancies/1/report", nil))
				convey.So(w2.Code, convey.ShouldEqual, http.StatusOK)
			})
		})

		convey.Convey("When the docs are requested", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", "/openapi.yaml", nil))

			convey.Convey("Then the OpenAPI document is served", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			})
		})
	})
}

func TestMatchCommand(t *testing.T) {
	convey.Convey("Given the match command", t, func() {
		_ = os.Setenv("TALENTMATCH_SEED_EMPLOYEES", "30")
		defer func() { _ = os.Unsetenv("TALENTMATCH_SEED_EMPLOYEES") }()

		convey.Convey("When it runs with JSON output", func() {
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetArgs([]string{
				"match", "--role", "Data Analyst", "--level", "Mid-Level",
				"--competency", "SQL", "--competency", " ", "--benchmarks", "100", "--limit", "2", "--json",
			})
			err := rootCmd.ExecuteContext(context.Background())

			convey.Convey("Then the report is printed without blank competencies", func() {
				convey.So(err, convey.ShouldBeNil)
				var rep model.Report
				convey.So(json.Unmarshal(out.Bytes(), &rep), convey.ShouldBeNil)
				convey.So(rep.Top, convey.ShouldHaveLength, 2)
				convey.So(rep.Rows[0].EmployeeID, convey.ShouldEqual, 100)
				convey.So(matchVacancy().Competencies, convey.ShouldResemble, []string{"SQL"})
			})
		})
	})
}

func TestPrintReport(t *testing.T) {
	convey.Convey("Given a report", t, func() {
		rep := model.Report{
			RunID: 3,
			Rows:  []model.ReportRow{{Rank: 1, EmployeeID: 11, Name: "Ana", Role: "Analyst", FinalRate: 88.25}},
			Top:   []model.ReportRow{{Rank: 1, EmployeeID: 11, Name: "Ana", Role: "Analyst", FinalRate: 88.25}},
			GroupMeans: []model.GroupMean{
				{Group: "Competency", MeanRate: 77.5},
			},
			MaxRate: 88.25,
		}

		convey.Convey("When it is printed as a table", func() {
			var out bytes.Buffer
			err := printReport(&out, rep)

			convey.Convey("Then the table and means are written", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out.String(), convey.ShouldContainSubstring, "Run 3: 1 candidates ranked")
				convey.So(out.String(), convey.ShouldContainSubstring, "88.25")
				convey.So(out.String(), convey.ShouldContainSubstring, "Competency 77.5")
			})
		})

		convey.Convey("When the report is empty", func() {
			var out bytes.Buffer
			err := printReport(&out, model.Report{Warnings: []string{"no candidate overlaps"}})

			convey.Convey("Then only the warning is written", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out.String(), convey.ShouldContainSubstring, "warning: no candidate overlaps")
				convey.So(out.String(), convey.ShouldNotContainSubstring, "RANK")
			})
		})
	})
}

func TestSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("Then a single update should not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})

		convey.Convey("Then the loop should stop with its context", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()
			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
		})
	})
}
