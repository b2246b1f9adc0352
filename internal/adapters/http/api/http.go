// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/talentmatch/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Match validates and records a vacancy, then returns its report.
	Match(ctx context.Context, v model.Vacancy, limit int) (model.Report, error)

	// Report recomputes the report of a stored run.
	Report(ctx context.Context, runID int64, limit int) (model.Report, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	vacancyHandler *VacancyHandler
}

// NewServer creates a new API server with all handlers. maxLimit caps the
// limit accepted from clients; 0 leaves it unbounded.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		vacancyHandler: NewVacancyHandler(deps, maxLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/vacancies", RequestIDMiddleware(MetricsMiddleware(s.vacancyHandler.HandleCreate, "vacancies")))
	mux.HandleFunc("/vacancies/", RequestIDMiddleware(MetricsMiddleware(s.vacancyHandler.HandleReport, "report")))
}

// matchResponse is returned by POST /vacancies.
type matchResponse struct {
	RunID  int64        `json:"run_id"`
	Report model.Report `json:"report"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure classifies err and writes the matching error body.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}
