// Package service runs vacancy matching: it validates the request, records the
// vacancy, reads one consistent snapshot and turns it into a match report.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ecodeclub/ekit/mapx"

	"github.com/okian/talentmatch/internal/adapters/repository"
	"github.com/okian/talentmatch/internal/domain/benchmark"
	"github.com/okian/talentmatch/internal/domain/model"
	"github.com/okian/talentmatch/internal/domain/ranking"
	"github.com/okian/talentmatch/internal/domain/report"
	"github.com/okian/talentmatch/internal/domain/scoring"
	"github.com/okian/talentmatch/internal/domain/vacancy"
	"github.com/okian/talentmatch/pkg/logger"
	"github.com/okian/talentmatch/pkg/metrics"
)

// ErrNotStarted is returned when a run is requested before Start.
var ErrNotStarted = errors.New("service not started")

// RunContext carries the state of one matching run through every stage.
type RunContext struct {
	RunID      int64
	Vacancy    model.Vacancy
	Benchmarks benchmark.Set
}

// Service implements the API dependencies for vacancy matching.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	scorer     *scoring.TraitScorer
	aggregator *ranking.Aggregator

	// Configuration
	tokenPolicy        benchmark.TokenPolicy
	missingPolicy      scoring.MissingPolicy
	normalizationRange float64
	traitRanges        map[string]float64
	tgvWeights         map[string]float64
	defaultWeight      float64
	excludeBenchmarks  bool
	topN               int
	histogramBins      int

	// State
	started bool

	// Counters
	runs          atomic.Int64
	emptyRuns     atomic.Int64
	failedRuns    atomic.Int64
	excludedTotal atomic.Int64
	lastRunID     atomic.Int64

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		tokenPolicy:        benchmark.PolicyDrop,
		missingPolicy:      scoring.MissingExclude,
		normalizationRange: 100,
		traitRanges:        map[string]float64{},
		tgvWeights:         map[string]float64{},
		defaultWeight:      1.0,
		topN:               10,
		histogramBins:      report.DefaultBins,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
		s.logger.Warn(ctx, "no store configured, using an empty memory store")
	}

	s.scorer = scoring.NewTraitScorer(
		scoring.WithNormalizationRange(s.normalizationRange),
		scoring.WithTraitRanges(s.traitRanges),
		scoring.WithMissingPolicy(s.missingPolicy),
	)
	s.aggregator = ranking.NewAggregator(
		ranking.WithTGVWeightsFromConfig(s.tgvWeights, s.defaultWeight),
	)

	s.started = true
	s.logger.Info(ctx, "matching service started",
		logger.String("tokenPolicy", string(s.tokenPolicy)),
		logger.String("missingTraitPolicy", string(s.missingPolicy)),
		logger.Int("topN", s.topN),
		logger.Any("excludeBenchmarks", s.excludeBenchmarks),
	)
	return nil
}

// Stop releases the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "closing store failed", logger.Error(err))
		}
	}
	s.started = false
	s.logger.Info(context.Background(), "matching service stopped")
}

// Match validates v, records it as a new run and returns the run's report.
// Input errors are returned before the store is touched. limit overrides the
// configured top size when positive.
func (s *Service) Match(ctx context.Context, v model.Vacancy, limit int) (model.Report, error) {
	start := time.Now()
	if err := s.ready(); err != nil {
		return model.Report{}, err
	}

	v, err := vacancy.Validate(v)
	if err != nil {
		return model.Report{}, s.fail(ctx, start, metrics.OutcomeMissingInput, err)
	}
	set, err := benchmark.Parse(v.BenchmarkIDs, s.tokenPolicy)
	if err != nil {
		return model.Report{}, s.fail(ctx, start, metrics.OutcomeInvalidBenchmark, err)
	}

	rec, err := s.store.CreateVacancy(ctx, v, set.IDs())
	if err != nil {
		return model.Report{}, s.fail(ctx, start, metrics.OutcomeDataSource, err)
	}
	metrics.RecordVacancyPersisted()
	s.lastRunID.Store(rec.RunID)

	s.logger.Info(ctx, "vacancy recorded",
		logger.Int64("runId", rec.RunID),
		logger.String("role", v.RoleName),
		logger.String("jobLevel", v.JobLevel),
		logger.Any("benchmarks", set.IDs()),
	)

	return s.execute(ctx, start, RunContext{RunID: rec.RunID, Vacancy: rec.Vacancy, Benchmarks: set}, limit)
}

// Report recomputes the report of a stored run against the current population.
func (s *Service) Report(ctx context.Context, runID int64, limit int) (model.Report, error) {
	start := time.Now()
	if err := s.ready(); err != nil {
		return model.Report{}, err
	}
	return s.execute(ctx, start, RunContext{RunID: runID}, limit)
}

// execute reads the snapshot once and runs every stage on it. When rc has no
// benchmark set yet it is restored from the stored record.
func (s *Service) execute(ctx context.Context, start time.Time, rc RunContext, limit int) (model.Report, error) {
	rec, snap, err := s.store.LoadRun(ctx, rc.RunID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Report{}, err
		}
		return model.Report{}, s.fail(ctx, start, metrics.OutcomeDataSource, err)
	}
	if rc.Benchmarks.Len() == 0 {
		rc.Vacancy = rec.Vacancy
		if rc.Benchmarks, err = benchmark.NewSet(rec.BenchmarkIDs); err != nil {
			return model.Report{}, s.fail(ctx, start, metrics.OutcomeInvalidBenchmark, err)
		}
	}

	profile, err := benchmark.Build(rc.Benchmarks, snap)
	if err != nil {
		return model.Report{}, s.fail(ctx, start, metrics.OutcomeInvalidBenchmark, err)
	}
	metrics.UpdateProfileTraits(profile.Len())

	rows, scored, excluded := s.score(ctx, rc, profile, snap)
	metrics.RecordCandidatesScored(scored)
	metrics.RecordCandidatesExcluded(excluded)
	s.excludedTotal.Add(int64(excluded))

	top := s.topN
	if limit > 0 {
		top = limit
	}
	rep, err := report.Assemble(rc.RunID, rows, excluded, report.Options{TopN: top, Bins: s.histogramBins})
	s.runs.Add(1)
	elapsed := float64(time.Since(start).Microseconds()) / 1000
	if errors.Is(err, report.ErrEmptyResult) {
		s.emptyRuns.Add(1)
		metrics.RecordRun(metrics.OutcomeEmpty, elapsed)
		s.logger.Warn(ctx, "run produced no candidates",
			logger.Int64("runId", rc.RunID),
			logger.Int("excluded", excluded),
		)
		return rep, nil
	}

	metrics.RecordRun(metrics.OutcomeOK, elapsed)
	s.logger.Info(ctx, "run completed",
		logger.Int64("runId", rc.RunID),
		logger.Int("candidates", len(rep.Rows)),
		logger.Int("excluded", excluded),
		logger.Int("profileTraits", profile.Len()),
		logger.Float64("maxRate", rep.MaxRate),
		logger.Float64("durationMs", elapsed),
	)
	return rep, nil
}

// score compares every candidate with profile and emits one raw row per
// (employee, TGV), ordered by rank then group name.
func (s *Service) score(ctx context.Context, rc RunContext, profile model.TargetProfile, snap model.Snapshot) ([]model.RawRow, int, int) {
	scorer := s.scorer.WithCatalog(snap.Scales)

	scores := make([]model.CandidateScore, 0, len(snap.Employees))
	excluded := 0
	for _, e := range snap.Employees {
		if s.excludeBenchmarks && rc.Benchmarks.Contains(e.ID) {
			continue
		}
		cs, err := scorer.Score(e.ID, profile, snap.Observations[e.ID])
		if err != nil {
			if errors.Is(err, scoring.ErrNoOverlap) {
				excluded++
				s.logger.Debug(ctx, "candidate excluded", logger.Int64("runId", rc.RunID), logger.Error(err))
				continue
			}
			s.logger.Error(ctx, "scoring failed", logger.Int64("employeeId", e.ID), logger.Error(err))
			continue
		}
		scores = append(scores, cs)
	}

	s.aggregator.Apply(scores)
	ranked := ranking.Rank(scores)

	rows := make([]model.RawRow, 0, len(ranked)*len(profile.Groups()))
	for _, cs := range ranked {
		e, _ := snap.Employee(cs.EmployeeID)
		groups := mapx.Keys(cs.GroupScores)
		sort.Strings(groups)
		for _, g := range groups {
			rows = append(rows, model.RawRow{
				EmployeeID: e.ID,
				Name:       e.Name,
				Role:       e.Role,
				Department: e.Department,
				Grade:      e.Grade,
				Group:      g,
				GroupRate:  cs.GroupScores[g],
				FinalRate:  cs.FinalRate,
			})
		}
	}
	return rows, len(scores), excluded
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

func (s *Service) fail(ctx context.Context, start time.Time, outcome string, err error) error {
	s.failedRuns.Add(1)
	metrics.RecordRun(outcome, float64(time.Since(start).Microseconds())/1000)
	metrics.RecordErrorByComponent("service", outcome)
	if outcome == metrics.OutcomeDataSource {
		s.logger.Error(ctx, "run aborted", logger.String("outcome", outcome), logger.Error(err))
	} else {
		s.logger.Info(ctx, "run rejected", logger.String("outcome", outcome), logger.Error(err))
	}
	return fmt.Errorf("%s: %w", outcome, err)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started":            s.started,
		"runs":               s.runs.Load(),
		"emptyRuns":          s.emptyRuns.Load(),
		"failedRuns":         s.failedRuns.Load(),
		"excludedCandidates": s.excludedTotal.Load(),
		"lastRunId":          s.lastRunID.Load(),
		"tokenPolicy":        string(s.tokenPolicy),
		"missingTraitPolicy": string(s.missingPolicy),
		"topN":               s.topN,
	}
}
