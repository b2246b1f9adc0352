package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/okian/talentmatch/internal/domain/model"
	"github.com/okian/talentmatch/pkg/logger"
)

const reportSuffix = "/report"

// createRequest mirrors the OpenAPI schema for POST /vacancies.
type createRequest struct {
	model.Vacancy
	Limit int `json:"limit"`
}

// VacancyHandler handles vacancy runs and their reports.
type VacancyHandler struct {
	deps     Dependencies
	maxLimit int
	validate *validator.Validate
}

// NewVacancyHandler creates a new vacancy handler.
func NewVacancyHandler(deps Dependencies, maxLimit int) *VacancyHandler {
	return &VacancyHandler{
		deps:     deps,
		maxLimit: maxLimit,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// HandleCreate handles POST /vacancies requests.
func (h *VacancyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_vacancy"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.checkLimit(op, req.Limit); err != nil {
		writeFailure(w, err)
		return
	}

	rep, err := h.deps.Match(r.Context(), req.Vacancy, req.Limit)
	if err != nil {
		h.logFailure(r, op, err)
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, matchResponse{RunID: rep.RunID, Report: rep})
}

// HandleReport handles GET /vacancies/{id}/report?limit=N requests.
func (h *VacancyHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_report"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/vacancies/")
	idText, ok := strings.CutSuffix(path, reportSuffix)
	if !ok || idText == "" || strings.Contains(idText, "/") {
		http.NotFound(w, r)
		return
	}
	runID, err := strconv.ParseInt(idText, 10, 64)
	if err != nil || runID < 1 {
		writeFailure(w, NewKind(op, ErrBadRequest))
		return
	}

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		if limit, err = strconv.Atoi(s); err != nil {
			writeFailure(w, WrapKind(op, ErrBadRequest, err))
			return
		}
	}
	if err := h.checkLimit(op, limit); err != nil {
		writeFailure(w, err)
		return
	}

	rep, err := h.deps.Report(r.Context(), runID, limit)
	if err != nil {
		h.logFailure(r, op, err)
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (h *VacancyHandler) checkLimit(op string, limit int) error {
	if err := h.validate.Var(limit, "gte=0"); err != nil {
		return WrapKind(op, ErrBadRequest, err)
	}
	if h.maxLimit > 0 && limit > h.maxLimit {
		return NewKind(op, ErrLimitExceeded)
	}
	return nil
}

func (h *VacancyHandler) logFailure(r *http.Request, op string, err error) {
	status, code := classify(err)
	fields := []logger.Field{logger.String("op", op), logger.String("code", code), logger.Error(err)}
	if status >= http.StatusInternalServerError {
		logger.Get().Error(r.Context(), "request failed", fields...)
		return
	}
	logger.Get().Debug(r.Context(), "request rejected", fields...)
}
