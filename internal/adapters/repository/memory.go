package repository

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ecodeclub/ekit/slice"

	"github.com/okian/talentmatch/internal/domain/model"
	"github.com/okian/talentmatch/pkg/metrics"
)

// MemoryStore is an in-process Store. Reads copy the population under a read
// lock, which gives every run a consistent snapshot.
type MemoryStore struct {
	mu        sync.RWMutex
	employees []model.Employee // ordered by id
	obs       map[int64][]model.TraitObservation
	scales    map[string]model.TraitScale
	runs      map[int64]model.VacancyRecord
	lastRunID int64
	now       func() time.Time
}

// NewMemoryStore constructs an empty store with configuration options.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		obs:    make(map[int64][]model.TraitObservation),
		scales: make(map[string]model.TraitScale),
		runs:   make(map[int64]model.VacancyRecord),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CreateVacancy implements Store.CreateVacancy. Run ids start at 1.
func (s *MemoryStore) CreateVacancy(ctx context.Context, v model.Vacancy, benchmarkIDs []int64) (model.VacancyRecord, error) {
	if err := ctx.Err(); err != nil {
		return model.VacancyRecord{}, dataSource("create vacancy", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastRunID++
	rec := model.VacancyRecord{
		RunID:        s.lastRunID,
		Vacancy:      copyVacancy(v),
		BenchmarkIDs: append([]int64(nil), benchmarkIDs...),
		CreatedAt:    s.now().UTC(),
	}
	rec.Vacancy.BenchmarkIDs = joinIDs(rec.BenchmarkIDs)
	s.runs[rec.RunID] = rec
	return rec, nil
}

// LoadRun implements Store.LoadRun.
func (s *MemoryStore) LoadRun(ctx context.Context, runID int64) (model.VacancyRecord, model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return model.VacancyRecord{}, model.Snapshot{}, dataSource("load run", err)
	}
	start := time.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.runs[runID]
	if !ok {
		return model.VacancyRecord{}, model.Snapshot{}, ErrNotFound
	}

	snap := model.Snapshot{
		Employees:    append([]model.Employee(nil), s.employees...),
		Observations: make(map[int64][]model.TraitObservation, len(s.obs)),
		Scales:       make(map[string]model.TraitScale, len(s.scales)),
	}
	for id, list := range s.obs {
		snap.Observations[id] = append([]model.TraitObservation(nil), list...)
	}
	for trait, sc := range s.scales {
		snap.Scales[trait] = sc
	}

	rec.Vacancy = copyVacancy(rec.Vacancy)
	rec.BenchmarkIDs = append([]int64(nil), rec.BenchmarkIDs...)

	metrics.UpdatePopulationSize(len(snap.Employees))
	metrics.RecordSnapshotLoadLatency(float64(time.Since(start).Microseconds()) / 1000)
	return rec, snap, nil
}

// Import implements Store.Import.
func (s *MemoryStore) Import(ctx context.Context, snap model.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return dataSource("import", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.importLocked(snap)
	return nil
}

// Count returns the number of employees.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.employees)
}

// Close implements Store.Close.
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) importLocked(snap model.Snapshot) {
	s.employees = append([]model.Employee(nil), snap.Employees...)
	sort.Slice(s.employees, func(i, j int) bool { return s.employees[i].ID < s.employees[j].ID })

	s.scales = make(map[string]model.TraitScale, len(snap.Scales))
	for trait, sc := range snap.Scales {
		s.scales[trait] = sc
	}

	s.obs = make(map[int64][]model.TraitObservation, len(snap.Observations))
	for id, list := range snap.Observations {
		s.obs[id] = append([]model.TraitObservation(nil), list...)
	}
}

func copyVacancy(v model.Vacancy) model.Vacancy {
	v.Competencies = append([]string(nil), v.Competencies...)
	v.Responsibilities = append([]string(nil), v.Responsibilities...)
	v.WorkInputs = append([]string(nil), v.WorkInputs...)
	v.WorkOutputs = append([]string(nil), v.WorkOutputs...)
	v.Qualifications = append([]string(nil), v.Qualifications...)
	return v
}

func joinIDs(ids []int64) string {
	return strings.Join(slice.Map(ids, func(_ int, id int64) string {
		return strconv.FormatInt(id, 10)
	}), ",")
}
