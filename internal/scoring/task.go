package scoring

import "time"

// Task is a single unit of work submitted for prioritization. Tasks are plain
// value records; dependency relationships are expressed by ID so a task never
// references another task directly.
type Task struct {
	ID             int        `json:"id"`
	Title          string     `json:"title"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	EstimatedHours float64    `json:"estimated_hours"`
	Importance     int        `json:"importance"`
	Dependencies   []int      `json:"dependencies,omitempty"`
}

// Breakdown captures the full scoring output for one task: the four component
// factors, the strategy-weighted final score, and the priority tier.
type Breakdown struct {
	Factors       []FactorResult `json:"factors"`
	PriorityScore float64        `json:"priority_score"`
	PriorityLevel string         `json:"priority_level"`
	Color         string         `json:"color"`
	Explanation   string         `json:"explanation"`
}

// ScoredTask is a Task annotated with its Breakdown. Recommendation is set
// only by Suggest.
type ScoredTask struct {
	Task
	Breakdown      Breakdown `json:"breakdown"`
	Recommendation string    `json:"recommendation,omitempty"`
}

// Result is the output of one analysis call: the batch ranked by priority
// score descending, plus the IDs of any tasks caught in a dependency cycle.
type Result struct {
	Strategy     string       `json:"strategy"`
	Ranked       []ScoredTask `json:"ranked"`
	CycleWarning []int        `json:"cycle_warning"`
}
