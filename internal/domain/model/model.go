// Package model contains domain models passed between layers.
package model

import (
	"sort"
	"time"
)

// Job levels accepted for a vacancy.
const (
	LevelJunior = "Junior"
	LevelMid    = "Mid-Level"
	LevelSenior = "Senior"
)

// Employee is immutable reference data for a member of the population.
type Employee struct {
	ID         int64
	Name       string
	Role       string
	Department string
	Grade      string // job level
}

// TraitObservation is one measured value for one employee and one trait.
type TraitObservation struct {
	EmployeeID int64
	Trait      string  // trait identifier
	Group      string  // TGV the trait belongs to
	Value      float64 // bounded scale, usually 0-100
}

// TraitScale describes a trait in the catalog.
type TraitScale struct {
	Trait string
	Group string
	Range float64 // full scale used to normalize deviations
}

// Vacancy is the job definition a matching run is executed for.
type Vacancy struct {
	RoleName         string   `json:"role_name" validate:"required"`
	JobLevel         string   `json:"job_level" validate:"required,oneof=Junior Mid-Level Senior"`
	RolePurpose      string   `json:"role_purpose"`
	Competencies     []string `json:"competencies" validate:"required,min=1,dive,required"`
	Responsibilities []string `json:"key_responsibilities,omitempty"`
	WorkInputs       []string `json:"work_inputs,omitempty"`
	WorkOutputs      []string `json:"work_outputs,omitempty"`
	Qualifications   []string `json:"qualifications,omitempty"`
	BenchmarkIDs     string   `json:"benchmark_ids"` // raw comma-separated text
}

// VacancyRecord is the persisted form of a run.
type VacancyRecord struct {
	RunID        int64
	Vacancy      Vacancy
	BenchmarkIDs []int64
	CreatedAt    time.Time
}

// Snapshot is a consistent read of the trait repository.
// Employees are ordered by id; Observations are keyed by employee id.
type Snapshot struct {
	Employees    []Employee
	Observations map[int64][]TraitObservation
	Scales       map[string]TraitScale
}

// Employee looks up one employee by id.
func (s Snapshot) Employee(id int64) (Employee, bool) {
	i := sort.Search(len(s.Employees), func(i int) bool { return s.Employees[i].ID >= id })
	if i < len(s.Employees) && s.Employees[i].ID == id {
		return s.Employees[i], true
	}
	return Employee{}, false
}

// TargetProfile is the synthesized expected value per trait. It is immutable
// once built.
type TargetProfile struct {
	values map[string]float64
	groups map[string]string
	traits []string
}

// NewTargetProfile copies values and groups into an immutable profile.
func NewTargetProfile(values map[string]float64, groups map[string]string) TargetProfile {
	p := TargetProfile{
		values: make(map[string]float64, len(values)),
		groups: make(map[string]string, len(values)),
		traits: make([]string, 0, len(values)),
	}
	for trait, v := range values {
		p.values[trait] = v
		p.groups[trait] = groups[trait]
		p.traits = append(p.traits, trait)
	}
	sort.Strings(p.traits)
	return p
}

// Traits returns the profile's trait ids in ascending order.
func (p TargetProfile) Traits() []string {
	out := make([]string, len(p.traits))
	copy(out, p.traits)
	return out
}

// Value returns the expected value for trait.
func (p TargetProfile) Value(trait string) (float64, bool) {
	v, ok := p.values[trait]
	return v, ok
}

// Group returns the TGV of trait.
func (p TargetProfile) Group(trait string) string { return p.groups[trait] }

// Len is the number of traits in the profile.
func (p TargetProfile) Len() int { return len(p.traits) }

// Groups returns the distinct TGVs covered by the profile, sorted.
func (p TargetProfile) Groups() []string {
	seen := make(map[string]struct{}, len(p.groups))
	out := make([]string, 0, len(p.groups))
	for _, trait := range p.traits {
		g := p.groups[trait]
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// CandidateScore is one candidate's result for a run.
type CandidateScore struct {
	EmployeeID   int64
	GroupScores  map[string]float64 // TGV -> sub-score, 0-100
	FinalRate    float64            // 0-100
	TraitsScored int
}

// RawRow mirrors one row of the per-(employee, TGV) result set.
type RawRow struct {
	EmployeeID int64
	Name       string
	Role       string
	Department string
	Grade      string
	Group      string
	GroupRate  float64
	FinalRate  float64
}

// ReportRow is one employee in the match report.
type ReportRow struct {
	Rank       int         `json:"rank"`
	EmployeeID int64       `json:"employee_id"`
	Name       string      `json:"name"`
	Role       string      `json:"role"`
	Department string      `json:"department"`
	Grade      string      `json:"grade"`
	FinalRate  float64     `json:"final_match_rate"`
	Groups     []GroupRate `json:"tgv_match_rates"`
}

// GroupRate is one TGV sub-score of a report row.
type GroupRate struct {
	Group string  `json:"tgv_name"`
	Rate  float64 `json:"tgv_match_rate"`
}

// DistributionPoint is one bar of the per-employee chart.
type DistributionPoint struct {
	EmployeeID int64   `json:"employee_id"`
	Name       string  `json:"name"`
	Rate       float64 `json:"final_match_rate"`
}

// HistogramBin counts employees whose final rate falls in [Lower, Upper).
// The last bin is closed on both ends.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// GroupMean is the population mean of one TGV's match rate.
type GroupMean struct {
	Group    string  `json:"tgv_name"`
	MeanRate float64 `json:"mean_match_rate"`
}

// Report is the output of a matching run.
type Report struct {
	RunID        int64               `json:"run_id"`
	Rows         []ReportRow         `json:"rows"`
	Top          []ReportRow         `json:"top"`
	Distribution []DistributionPoint `json:"distribution"`
	Histogram    []HistogramBin      `json:"histogram"`
	GroupMeans   []GroupMean         `json:"tgv_means"`
	MaxRate      float64             `json:"max_rate"`
	Excluded     int                 `json:"excluded"`
	Warnings     []string            `json:"warnings,omitempty"`
}
