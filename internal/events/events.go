package events

import "time"

const (
	StreamName   = "TRIAGE_EVENTS"
	StreamMaxAge = "168h" // 7 days
)

func SubjectAnalysisCompleted(analysisID string) string {
	return "triage.analysis." + analysisID + ".completed"
}

func SubjectSuggestionServed(analysisID string) string {
	return "triage.analysis." + analysisID + ".suggested"
}

// AnalysisCompletedEvent summarizes one analysis call for downstream
// consumers (dashboards, audit trails).
type AnalysisCompletedEvent struct {
	AnalysisID string    `json:"analysis_id"`
	Strategy   string    `json:"strategy"`
	TotalTasks int       `json:"total_tasks"`
	CycleCount int       `json:"cycle_count"`
	TopTaskID  int       `json:"top_task_id"`
	TopScore   float64   `json:"top_score"`
	DurationMs float64   `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}
