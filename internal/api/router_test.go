package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MikeSquared-Agency/Triage/internal/config"
	"github.com/MikeSquared-Agency/Triage/internal/scoring"
)

// mockEvents records published events.
type mockEvents struct {
	subjects []string
	payloads []interface{}
}

func (m *mockEvents) Publish(subject string, data interface{}) error {
	m.subjects = append(m.subjects, subject)
	m.payloads = append(m.payloads, data)
	return nil
}
func (m *mockEvents) Close() {}

func setupTestRouter() (http.Handler, *mockEvents) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Server:   config.ServerConfig{RateLimitPerMin: 1000},
		Analysis: config.AnalysisConfig{MaxBatchSize: 100, DefaultStrategy: "balanced", SuggestLimit: 3},
	}
	ev := &mockEvents{}
	router := NewRouter(scoring.NewAnalyzer(logger), ev, cfg, logger)
	return router, ev
}

func postJSON(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sampleTasks() []scoring.Task {
	due := time.Now().Add(48 * time.Hour)
	far := time.Now().Add(20 * 24 * time.Hour)
	return []scoring.Task{
		{ID: 1, Title: "write report", DueDate: &due, Importance: 8, EstimatedHours: 3},
		{ID: 2, Title: "fix typo", DueDate: &far, Importance: 3, EstimatedHours: 0.5, Dependencies: []int{1}},
		{ID: 3, Title: "plan sprint", Importance: 6, EstimatedHours: 2},
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	router, ev := setupTestRouter()

	w := postJSON(t, router, "/api/v1/tasks/analyze", AnalyzeRequest{Tasks: sampleTasks(), Strategy: "balanced"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		AnalysisID   string               `json:"analysis_id"`
		Strategy     string               `json:"strategy"`
		TotalTasks   int                  `json:"total_tasks"`
		CycleWarning []int                `json:"cycle_warning"`
		Tasks        []scoring.ScoredTask `json:"tasks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.AnalysisID == "" {
		t.Error("missing analysis_id")
	}
	if resp.Strategy != "balanced" {
		t.Errorf("strategy = %q, want balanced", resp.Strategy)
	}
	if resp.TotalTasks != 3 || len(resp.Tasks) != 3 {
		t.Errorf("total_tasks = %d, tasks = %d, want 3", resp.TotalTasks, len(resp.Tasks))
	}
	if len(resp.CycleWarning) != 0 {
		t.Errorf("unexpected cycle warning: %v", resp.CycleWarning)
	}
	for i := 1; i < len(resp.Tasks); i++ {
		if resp.Tasks[i].Breakdown.PriorityScore > resp.Tasks[i-1].Breakdown.PriorityScore {
			t.Errorf("tasks not ranked descending at %d", i)
		}
	}

	if len(ev.subjects) != 1 {
		t.Fatalf("expected 1 event, got %d", len(ev.subjects))
	}
}

func TestAnalyzeEndpointDefaultStrategy(t *testing.T) {
	router, _ := setupTestRouter()

	w := postJSON(t, router, "/api/v1/tasks/analyze", AnalyzeRequest{Tasks: sampleTasks()})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["strategy"] != "balanced" {
		t.Errorf("strategy = %v, want balanced", resp["strategy"])
	}
}

func TestAnalyzeEndpointEmptyBatch(t *testing.T) {
	router, _ := setupTestRouter()

	w := postJSON(t, router, "/api/v1/tasks/analyze", AnalyzeRequest{Tasks: []scoring.Task{}, Strategy: "balanced"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAnalyzeEndpointUnknownStrategy(t *testing.T) {
	router, _ := setupTestRouter()

	w := postJSON(t, router, "/api/v1/tasks/analyze", AnalyzeRequest{Tasks: sampleTasks(), Strategy: "not_a_real_strategy"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAnalyzeEndpointMalformedBody(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("POST", "/api/v1/tasks/analyze", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAnalyzeEndpointMalformedTask(t *testing.T) {
	router, _ := setupTestRouter()

	w := postJSON(t, router, "/api/v1/tasks/analyze", AnalyzeRequest{
		Tasks: []scoring.Task{{ID: 1, Importance: 5}}, // no title
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAnalyzeEndpointBatchTooLarge(t *testing.T) {
	router, _ := setupTestRouter()

	tasks := make([]scoring.Task, 101)
	for i := range tasks {
		tasks[i] = scoring.Task{ID: i + 1, Title: "t", Importance: 5, EstimatedHours: 1}
	}
	w := postJSON(t, router, "/api/v1/tasks/analyze", AnalyzeRequest{Tasks: tasks})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAnalyzeEndpointCycleWarning(t *testing.T) {
	router, _ := setupTestRouter()

	tasks := []scoring.Task{
		{ID: 1, Title: "a", Importance: 5, EstimatedHours: 1, Dependencies: []int{2}},
		{ID: 2, Title: "b", Importance: 5, EstimatedHours: 1, Dependencies: []int{1}},
	}
	w := postJSON(t, router, "/api/v1/tasks/analyze", AnalyzeRequest{Tasks: tasks})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		CycleWarning []int  `json:"cycle_warning"`
		Warning      string `json:"warning"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.CycleWarning) != 2 {
		t.Errorf("cycle_warning = %v, want [1 2]", resp.CycleWarning)
	}
	if resp.Warning == "" {
		t.Error("expected warning message for cycles")
	}
}

func TestSuggestEndpoint(t *testing.T) {
	router, ev := setupTestRouter()

	w := postJSON(t, router, "/api/v1/tasks/suggest", SuggestRequest{Tasks: sampleTasks(), Limit: 2})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		SuggestionsCount int                  `json:"suggestions_count"`
		Suggestions      []scoring.ScoredTask `json:"suggestions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SuggestionsCount != 2 || len(resp.Suggestions) != 2 {
		t.Errorf("expected 2 suggestions, got %d/%d", resp.SuggestionsCount, len(resp.Suggestions))
	}
	if resp.Suggestions[0].Recommendation == "" {
		t.Error("missing recommendation")
	}
	if len(ev.subjects) != 1 {
		t.Fatalf("expected 1 event, got %d", len(ev.subjects))
	}
}

func TestSuggestEndpointDefaultLimit(t *testing.T) {
	router, _ := setupTestRouter()

	tasks := sampleTasks()
	extra := scoring.Task{ID: 4, Title: "extra", Importance: 5, EstimatedHours: 1}
	w := postJSON(t, router, "/api/v1/tasks/suggest", SuggestRequest{Tasks: append(tasks, extra)})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		SuggestionsCount int `json:"suggestions_count"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.SuggestionsCount != 3 {
		t.Errorf("expected default limit of 3, got %d", resp.SuggestionsCount)
	}
}

func TestStrategiesEndpoint(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/api/v1/strategies", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Default    string             `json:"default"`
		Strategies []scoring.Strategy `json:"strategies"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Default != "balanced" {
		t.Errorf("default = %q, want balanced", resp.Default)
	}
	if len(resp.Strategies) != 4 {
		t.Errorf("expected 4 strategies, got %d", len(resp.Strategies))
	}
}

func TestMetricsRouterHealth(t *testing.T) {
	router := NewMetricsRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/metrics", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 from /metrics, got %d", w.Code)
	}
}
