// Package seed generates a reproducible synthetic employee population for the
// memory store and for seeding PostgreSQL.
package seed

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/okian/talentmatch/internal/domain/model"
)

// Default generation parameters.
const (
	defaultEmployees   = 200
	defaultSeed        = 42
	defaultMissingRate = 0.08
	firstEmployeeID    = 100
)

// Performer tiers shift every trait of an employee by a common level.
const (
	tierElite = iota
	tierHigh
	tierAverage
	tierLow
	tierCount
)

var tierBase = [tierCount]float64{
	tierElite:   85,
	tierHigh:    72,
	tierAverage: 58,
	tierLow:     40,
}

// Catalog is the built-in trait catalog.
var Catalog = []model.TraitScale{
	{Trait: "iq", Group: "Cognitive Ability", Range: 100},
	{Trait: "gtq", Group: "Cognitive Ability", Range: 100},
	{Trait: "pauli", Group: "Cognitive Ability", Range: 100},
	{Trait: "quality_delivery", Group: "Competency", Range: 100},
	{Trait: "strategic_thinking", Group: "Competency", Range: 100},
	{Trait: "collaboration", Group: "Competency", Range: 100},
	{Trait: "papi_leadership", Group: "Work Preference", Range: 9},
	{Trait: "papi_achievement", Group: "Work Preference", Range: 9},
	{Trait: "papi_teamwork", Group: "Work Preference", Range: 9},
	{Trait: "futuristic", Group: "Strengths", Range: 100},
	{Trait: "learner", Group: "Strengths", Range: 100},
	{Trait: "relator", Group: "Strengths", Range: 100},
}

var (
	firstNames  = []string{"Ayu", "Bima", "Citra", "Dimas", "Eka", "Fajar", "Gita", "Hadi", "Intan", "Joko", "Kirana", "Lukas"}
	lastNames   = []string{"Pratama", "Santoso", "Wijaya", "Saputra", "Lestari", "Hidayat", "Nugroho", "Kusuma"}
	roles       = []string{"Data Analyst", "Software Engineer", "Product Manager", "Sales Executive", "HR Generalist"}
	departments = []string{"Analytics", "Engineering", "Product", "Sales", "People"}
	grades      = []string{"III", "IV", "V", "VI"}
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithEmployees sets the population size.
func WithEmployees(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.employees = n
		}
	}
}

// WithSeed sets the random seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithMissingRate sets the chance that one observation is left out.
func WithMissingRate(p float64) Option {
	return func(g *Generator) {
		if p >= 0 && p < 1 {
			g.missingRate = p
		}
	}
}

// Generator produces synthetic populations.
type Generator struct {
	employees   int
	seed        int64
	missingRate float64
}

// NewGenerator creates a generator with configuration options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		employees:   defaultEmployees,
		seed:        defaultSeed,
		missingRate: defaultMissingRate,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds the population. The same options always yield the same
// population. Employee ids are sequential from 100.
func (g *Generator) Generate() model.Snapshot {
	rng := rand.New(rand.NewSource(g.seed)) //nolint:gosec // reproducible synthetic data

	snap := model.Snapshot{
		Employees:    make([]model.Employee, 0, g.employees),
		Observations: make(map[int64][]model.TraitObservation, g.employees),
		Scales:       make(map[string]model.TraitScale, len(Catalog)),
	}
	for _, sc := range Catalog {
		snap.Scales[sc.Trait] = sc
	}

	for i := 0; i < g.employees; i++ {
		id := int64(firstEmployeeID + i)
		dept := rng.Intn(len(departments))
		snap.Employees = append(snap.Employees, model.Employee{
			ID:         id,
			Name:       fmt.Sprintf("%s %s", firstNames[rng.Intn(len(firstNames))], lastNames[rng.Intn(len(lastNames))]),
			Role:       roles[dept],
			Department: departments[dept],
			Grade:      grades[rng.Intn(len(grades))],
		})

		base := tierBase[rng.Intn(tierCount)]
		for _, sc := range Catalog {
			if rng.Float64() < g.missingRate {
				continue
			}
			snap.Observations[id] = append(snap.Observations[id], model.TraitObservation{
				EmployeeID: id,
				Trait:      sc.Trait,
				Group:      sc.Group,
				Value:      sample(rng, base, sc.Range),
			})
		}
	}
	return snap
}

// sample draws around base (expressed on a 0-100 scale) and rescales to rng.
func sample(rng *rand.Rand, base, scale float64) float64 {
	v := base + rng.NormFloat64()*12
	v = math.Max(0, math.Min(100, v))
	return math.Round(v/100*scale*10) / 10
}
