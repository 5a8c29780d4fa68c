package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Triage/internal/config"
	"github.com/MikeSquared-Agency/Triage/internal/events"
	"github.com/MikeSquared-Agency/Triage/internal/scoring"
)

type AnalyzeHandler struct {
	analyzer *scoring.Analyzer
	events   events.Client
	cfg      config.AnalysisConfig
}

func NewAnalyzeHandler(a *scoring.Analyzer, ev events.Client, cfg config.AnalysisConfig) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: a, events: ev, cfg: cfg}
}

type AnalyzeRequest struct {
	Tasks    []scoring.Task `json:"tasks"`
	Strategy string         `json:"strategy,omitempty"`
}

type SuggestRequest struct {
	Tasks    []scoring.Task `json:"tasks"`
	Strategy string         `json:"strategy,omitempty"`
	Limit    int            `json:"limit,omitempty"`
}

// Analyze handles POST /api/v1/tasks/analyze
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if h.cfg.MaxBatchSize > 0 && len(req.Tasks) > h.cfg.MaxBatchSize {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "batch too large"})
		return
	}
	if req.Strategy == "" {
		req.Strategy = h.cfg.DefaultStrategy
	}

	start := time.Now()
	res, err := h.analyzer.Analyze(req.Tasks, req.Strategy)
	if err != nil {
		writeAnalysisError(w, err)
		observeAnalysis(req.Strategy, "error")
		return
	}
	observeAnalysis(res.Strategy, "ok")
	observeBatch(res)

	analysisID := uuid.NewString()
	resp := map[string]interface{}{
		"analysis_id":   analysisID,
		"strategy":      res.Strategy,
		"total_tasks":   len(res.Ranked),
		"cycle_warning": res.CycleWarning,
		"tasks":         res.Ranked,
	}
	if len(res.CycleWarning) > 0 {
		resp["warning"] = "circular dependencies detected; affected tasks have reduced priority scores"
	}

	h.publish(events.SubjectAnalysisCompleted(analysisID), analysisID, res, time.Since(start))
	writeJSON(w, http.StatusOK, resp)
}

// Suggest handles POST /api/v1/tasks/suggest
func (h *AnalyzeHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if h.cfg.MaxBatchSize > 0 && len(req.Tasks) > h.cfg.MaxBatchSize {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "batch too large"})
		return
	}
	if req.Strategy == "" {
		req.Strategy = h.cfg.DefaultStrategy
	}
	if req.Limit < 1 {
		req.Limit = h.cfg.SuggestLimit
	}

	start := time.Now()
	res, err := h.analyzer.Suggest(req.Tasks, req.Strategy, req.Limit)
	if err != nil {
		writeAnalysisError(w, err)
		observeAnalysis(req.Strategy, "error")
		return
	}
	observeAnalysis(res.Strategy, "ok")

	analysisID := uuid.NewString()
	resp := map[string]interface{}{
		"analysis_id":       analysisID,
		"strategy":          res.Strategy,
		"suggestions_count": len(res.Ranked),
		"suggestions":       res.Ranked,
	}

	h.publish(events.SubjectSuggestionServed(analysisID), analysisID, res, time.Since(start))
	writeJSON(w, http.StatusOK, resp)
}

func (h *AnalyzeHandler) publish(subject, analysisID string, res *scoring.Result, elapsed time.Duration) {
	if h.events == nil {
		return
	}
	ev := events.AnalysisCompletedEvent{
		AnalysisID: analysisID,
		Strategy:   res.Strategy,
		TotalTasks: len(res.Ranked),
		CycleCount: len(res.CycleWarning),
		DurationMs: float64(elapsed.Microseconds()) / 1000,
		Timestamp:  time.Now().UTC(),
	}
	if len(res.Ranked) > 0 {
		ev.TopTaskID = res.Ranked[0].ID
		ev.TopScore = res.Ranked[0].Breakdown.PriorityScore
	}
	_ = h.events.Publish(subject, ev)
}

// writeAnalysisError maps engine errors onto the API contract: empty batches
// and malformed tasks are client errors, an unknown strategy is reported
// distinctly as unprocessable.
func writeAnalysisError(w http.ResponseWriter, err error) {
	var malformed *scoring.MalformedTaskError
	switch {
	case errors.Is(err, scoring.ErrEmptyBatch):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no tasks provided", "details": "the tasks list cannot be empty"})
	case errors.Is(err, scoring.ErrUnknownStrategy):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "unknown strategy", "details": err.Error()})
	case errors.As(err, &malformed):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed task", "details": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
