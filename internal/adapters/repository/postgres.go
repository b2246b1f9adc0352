package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/ekit/retry"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okian/talentmatch/internal/domain/model"
	"github.com/okian/talentmatch/pkg/metrics"
)

//go:embed schema.sql
var schemaSQL string

// PostgresStore is a Store backed by PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect opens a pool and pings it, retrying with exponential backoff.
func Connect(ctx context.Context, databaseURL string, opts ...ConnectOption) (*PostgresStore, error) {
	cfg := connectConfig{
		retries:     5,
		minInterval: 200 * time.Millisecond,
		maxInterval: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	pool, err := connectOnce(ctx, databaseURL)
	if err == nil {
		return &PostgresStore{pool: pool}, nil
	}
	if cfg.retries == 0 {
		return nil, dataSource("connect", err)
	}

	strategy, serr := retry.NewExponentialBackoffRetryStrategy(cfg.minInterval, cfg.maxInterval, int32(cfg.retries))
	if serr != nil {
		return nil, dataSource("connect", serr)
	}
	for {
		metrics.RecordRepositoryError()
		next, ok := strategy.Next()
		if !ok {
			return nil, dataSource("connect", err)
		}
		select {
		case <-ctx.Done():
			return nil, dataSource("connect", ctx.Err())
		case <-time.After(next):
		}
		if pool, err = connectOnce(ctx, databaseURL); err == nil {
			return &PostgresStore{pool: pool}, nil
		}
	}
}

func connectOnce(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// Close implements Store.Close.
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// Migrate applies the embedded schema. It is idempotent.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return dataSource("migrate", err)
	}
	return nil
}

// CreateVacancy implements Store.CreateVacancy. The run id comes from the
// insert itself, so concurrent runs never observe each other's ids.
func (s *PostgresStore) CreateVacancy(ctx context.Context, v model.Vacancy, benchmarkIDs []int64) (model.VacancyRecord, error) {
	rec := model.VacancyRecord{
		Vacancy:      copyVacancy(v),
		BenchmarkIDs: append([]int64(nil), benchmarkIDs...),
	}
	rec.Vacancy.BenchmarkIDs = joinIDs(rec.BenchmarkIDs)

	err := s.pool.QueryRow(ctx,
		`INSERT INTO talent_benchmarks
		   (role_name, job_level, role_purpose, selected_talent_ids, competencies,
		    key_responsibilities, work_inputs, work_outputs, qualifications)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING job_vacancy_id, created_at`,
		v.RoleName, v.JobLevel, v.RolePurpose, rec.BenchmarkIDs, nonNil(v.Competencies),
		nonNil(v.Responsibilities), nonNil(v.WorkInputs), nonNil(v.WorkOutputs), nonNil(v.Qualifications),
	).Scan(&rec.RunID, &rec.CreatedAt)
	if err != nil {
		metrics.RecordRepositoryError()
		return model.VacancyRecord{}, dataSource("create vacancy", err)
	}
	return rec, nil
}

// LoadRun implements Store.LoadRun inside one REPEATABLE READ, read-only
// transaction.
func (s *PostgresStore) LoadRun(ctx context.Context, runID int64) (model.VacancyRecord, model.Snapshot, error) {
	start := time.Now()
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		metrics.RecordRepositoryError()
		return model.VacancyRecord{}, model.Snapshot{}, dataSource("begin snapshot", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rec, err := loadRecord(ctx, tx, runID)
	if err != nil {
		return model.VacancyRecord{}, model.Snapshot{}, err
	}
	snap, err := loadSnapshot(ctx, tx)
	if err != nil {
		metrics.RecordRepositoryError()
		return model.VacancyRecord{}, model.Snapshot{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return model.VacancyRecord{}, model.Snapshot{}, dataSource("commit snapshot", err)
	}

	metrics.UpdatePopulationSize(len(snap.Employees))
	metrics.RecordSnapshotLoadLatency(float64(time.Since(start).Microseconds()) / 1000)
	return rec, snap, nil
}

func loadRecord(ctx context.Context, tx pgx.Tx, runID int64) (model.VacancyRecord, error) {
	rec := model.VacancyRecord{RunID: runID}
	v := &rec.Vacancy
	err := tx.QueryRow(ctx,
		`SELECT role_name, job_level, role_purpose, selected_talent_ids, competencies,
		        key_responsibilities, work_inputs, work_outputs, qualifications, created_at
		   FROM talent_benchmarks
		  WHERE job_vacancy_id = $1`,
		runID,
	).Scan(&v.RoleName, &v.JobLevel, &v.RolePurpose, &rec.BenchmarkIDs, &v.Competencies,
		&v.Responsibilities, &v.WorkInputs, &v.WorkOutputs, &v.Qualifications, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.VacancyRecord{}, ErrNotFound
		}
		metrics.RecordRepositoryError()
		return model.VacancyRecord{}, dataSource("load run", err)
	}
	v.BenchmarkIDs = joinIDs(rec.BenchmarkIDs)
	return rec, nil
}

func loadSnapshot(ctx context.Context, tx pgx.Tx) (model.Snapshot, error) {
	snap := model.Snapshot{
		Observations: make(map[int64][]model.TraitObservation),
		Scales:       make(map[string]model.TraitScale),
	}

	rows, err := tx.Query(ctx,
		`SELECT employee_id, fullname, role, department, grade
		   FROM employees
		  ORDER BY employee_id`)
	if err != nil {
		return snap, dataSource("load employees", err)
	}
	snap.Employees, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Employee, error) {
		var e model.Employee
		err := row.Scan(&e.ID, &e.Name, &e.Role, &e.Department, &e.Grade)
		return e, err
	})
	if err != nil {
		return snap, dataSource("load employees", err)
	}

	rows, err = tx.Query(ctx, `SELECT trait_name, tgv_name, scale_range FROM trait_catalog`)
	if err != nil {
		return snap, dataSource("load catalog", err)
	}
	scales, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.TraitScale, error) {
		var sc model.TraitScale
		err := row.Scan(&sc.Trait, &sc.Group, &sc.Range)
		return sc, err
	})
	if err != nil {
		return snap, dataSource("load catalog", err)
	}
	for _, sc := range scales {
		snap.Scales[sc.Trait] = sc
	}

	rows, err = tx.Query(ctx,
		`SELECT s.employee_id, s.trait_name, c.tgv_name, s.score
		   FROM trait_scores s
		   JOIN trait_catalog c ON c.trait_name = s.trait_name
		  ORDER BY s.employee_id, s.trait_name`)
	if err != nil {
		return snap, dataSource("load scores", err)
	}
	obs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.TraitObservation, error) {
		var o model.TraitObservation
		err := row.Scan(&o.EmployeeID, &o.Trait, &o.Group, &o.Value)
		return o, err
	})
	if err != nil {
		return snap, dataSource("load scores", err)
	}
	for _, o := range obs {
		snap.Observations[o.EmployeeID] = append(snap.Observations[o.EmployeeID], o)
	}
	return snap, nil
}

// Import implements Store.Import. The population tables are replaced in one
// transaction using COPY; vacancy records are kept.
func (s *PostgresStore) Import(ctx context.Context, snap model.Snapshot) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return dataSource("import", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `TRUNCATE trait_scores, trait_catalog, employees`); err != nil {
		return dataSource("import truncate", err)
	}

	_, err = tx.CopyFrom(ctx, pgx.Identifier{"employees"},
		[]string{"employee_id", "fullname", "role", "department", "grade"},
		pgx.CopyFromSlice(len(snap.Employees), func(i int) ([]any, error) {
			e := snap.Employees[i]
			return []any{e.ID, e.Name, e.Role, e.Department, e.Grade}, nil
		}))
	if err != nil {
		return dataSource("import employees", err)
	}

	scales := make([]model.TraitScale, 0, len(snap.Scales))
	for _, sc := range snap.Scales {
		scales = append(scales, sc)
	}
	_, err = tx.CopyFrom(ctx, pgx.Identifier{"trait_catalog"},
		[]string{"trait_name", "tgv_name", "scale_range"},
		pgx.CopyFromSlice(len(scales), func(i int) ([]any, error) {
			return []any{scales[i].Trait, scales[i].Group, scales[i].Range}, nil
		}))
	if err != nil {
		return dataSource("import catalog", err)
	}

	var obs []model.TraitObservation
	for _, list := range snap.Observations {
		obs = append(obs, list...)
	}
	_, err = tx.CopyFrom(ctx, pgx.Identifier{"trait_scores"},
		[]string{"employee_id", "trait_name", "score"},
		pgx.CopyFromSlice(len(obs), func(i int) ([]any, error) {
			return []any{obs[i].EmployeeID, obs[i].Trait, obs[i].Value}, nil
		}))
	if err != nil {
		return dataSource("import scores", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return dataSource("import commit", err)
	}
	return nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
