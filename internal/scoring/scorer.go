package scoring

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
)

var (
	// ErrEmptyBatch is returned when an analysis is requested for zero tasks.
	ErrEmptyBatch = errors.New("task batch is empty")

	// ErrUnknownStrategy is returned for an unrecognized strategy name.
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// MalformedTaskError reports a task that cannot be scored even after clamping.
type MalformedTaskError struct {
	Index  int
	Reason string
}

func (e *MalformedTaskError) Error() string {
	return fmt.Sprintf("malformed task at index %d: %s", e.Index, e.Reason)
}

// DefaultSuggestLimit is the number of tasks Suggest returns when the caller
// passes a limit below 1.
const DefaultSuggestLimit = 3

// Analyzer runs the full prioritization pipeline: dependency graph analysis,
// the four component scorers, strategy-weighted aggregation, and ranking. It
// holds no mutable state between calls, so a single Analyzer is safe for
// concurrent use.
type Analyzer struct {
	now    func() time.Time
	logger *slog.Logger
}

// NewAnalyzer creates an Analyzer using the wall clock.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	return &Analyzer{now: time.Now, logger: logger}
}

// Analyze scores and ranks a batch of tasks under the named strategy. Ranking
// is stable: tasks with equal final scores keep their input order. Unknown
// dependency IDs are dropped and cycles become warnings, never errors.
func (a *Analyzer) Analyze(tasks []Task, strategy string) (*Result, error) {
	if len(tasks) == 0 {
		return nil, ErrEmptyBatch
	}

	strat, err := ResolveStrategy(strategy)
	if err != nil {
		return nil, err
	}

	batch, err := normalizeBatch(tasks)
	if err != nil {
		return nil, err
	}

	graph := AnalyzeGraph(batch)
	now := a.now()

	ranked := make([]ScoredTask, len(batch))
	for i, t := range batch {
		ranked[i] = ScoredTask{
			Task:      t,
			Breakdown: scoreTask(t, graph, strat.Weights, now),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Breakdown.PriorityScore > ranked[j].Breakdown.PriorityScore
	})

	cycleIDs := graph.CycleIDs()
	if len(cycleIDs) > 0 && a.logger != nil {
		a.logger.Warn("circular dependencies detected", "task_ids", cycleIDs)
	}

	return &Result{
		Strategy:     strat.Name,
		Ranked:       ranked,
		CycleWarning: cycleIDs,
	}, nil
}

// Suggest returns the top N ranked tasks with a per-rank recommendation.
// Limits below 1 fall back to DefaultSuggestLimit.
func (a *Analyzer) Suggest(tasks []Task, strategy string, limit int) (*Result, error) {
	if limit < 1 {
		limit = DefaultSuggestLimit
	}

	res, err := a.Analyze(tasks, strategy)
	if err != nil {
		return nil, err
	}

	if limit < len(res.Ranked) {
		res.Ranked = res.Ranked[:limit]
	}
	for i := range res.Ranked {
		res.Ranked[i].Recommendation = fmt.Sprintf("Ranked #%d: %s", i+1, res.Ranked[i].Breakdown.Explanation)
	}
	return res, nil
}

func scoreTask(t Task, graph GraphResult, weights WeightSet, now time.Time) Breakdown {
	factors := []FactorResult{
		UrgencyFactor(t.DueDate, now),
		ImportanceFactor(t.Importance),
		EffortFactor(t.EstimatedHours),
		DependencyFactor(graph.BlockedCounts[t.ID], graph.CycleSet[t.ID]),
	}

	weightList := []float64{weights.Urgency, weights.Importance, weights.Effort, weights.Dependency}

	var total float64
	parts := make([]string, len(factors))
	for i := range factors {
		factors[i].Weight = weightList[i]
		factors[i].Weighted = round2(factors[i].Score * weightList[i])
		total += factors[i].Score * weightList[i]
		parts[i] = fmt.Sprintf("%s: %s (%s)", strings.ToUpper(factors[i].Name[:1])+factors[i].Name[1:], factors[i].Label, factors[i].Reason)
	}

	level, color := priorityTier(total)

	return Breakdown{
		Factors:       factors,
		PriorityScore: round2(total),
		PriorityLevel: level,
		Color:         color,
		Explanation:   strings.Join(parts, " | "),
	}
}

// priorityTier buckets a final score into HIGH/MEDIUM/LOW with its UI color.
func priorityTier(score float64) (string, string) {
	switch {
	case score >= 75:
		return "HIGH", "red"
	case score >= 50:
		return "MEDIUM", "yellow"
	default:
		return "LOW", "green"
	}
}

// normalizeBatch validates and copies the input batch: titles must be present,
// explicit IDs must be unique, and missing IDs are auto-assigned from the
// first unused positive integers in input order. Importance and effort are
// clamped later by their scorers, so no range check happens here.
func normalizeBatch(tasks []Task) ([]Task, error) {
	out := make([]Task, len(tasks))
	used := make(map[int]bool, len(tasks))

	for i, t := range tasks {
		if strings.TrimSpace(t.Title) == "" {
			return nil, &MalformedTaskError{Index: i, Reason: "title is required"}
		}
		if t.ID > 0 {
			if used[t.ID] {
				return nil, &MalformedTaskError{Index: i, Reason: fmt.Sprintf("duplicate task id %d", t.ID)}
			}
			used[t.ID] = true
		}
		out[i] = t
	}

	next := 1
	for i := range out {
		if out[i].ID > 0 {
			continue
		}
		for used[next] {
			next++
		}
		out[i].ID = next
		used[next] = true
	}

	return out, nil
}
