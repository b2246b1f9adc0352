// Package repository holds the trait data and the vacancy records a matching
// run reads from.
package repository

import (
	"context"

	"github.com/okian/talentmatch/internal/domain/model"
)

// Store provides read/write access to vacancy records and read access to the
// employee population.
type Store interface {
	// CreateVacancy persists one vacancy record and returns it with its new run id.
	CreateVacancy(ctx context.Context, v model.Vacancy, benchmarkIDs []int64) (model.VacancyRecord, error)

	// LoadRun returns the run record together with the population, read as
	// one consistent snapshot. Returns ErrNotFound for an unknown run.
	LoadRun(ctx context.Context, runID int64) (model.VacancyRecord, model.Snapshot, error)

	// Import replaces the population with snap.
	Import(ctx context.Context, snap model.Snapshot) error

	// Close releases resources held by the store.
	Close() error
}
