package scoring

import (
	"fmt"
	"math"
	"time"
)

// FactorResult captures one component's contribution to a task's priority score.
type FactorResult struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Label    string  `json:"label"`
	Weight   float64 `json:"weight"`
	Weighted float64 `json:"weighted"`
	Reason   string  `json:"reason"`
}

const (
	// unscheduledUrgency is the fixed score for tasks with no due date.
	// Absence means "unscheduled", not "distant", so it sits between the
	// one-week and two-week bands rather than at the bottom.
	unscheduledUrgency = 40.0

	// Overdue tasks start above every non-overdue band and climb toward 100
	// as the overdue duration grows.
	overdueBase   = 95.0
	overduePerDay = 2.5

	// maxEffortHours bounds effort input; anything above scores 0 anyway.
	maxEffortHours = 200.0
)

// UrgencyFactor scores time pressure on a 0-100 scale. Piecewise linear,
// continuous at band boundaries, and monotonically non-increasing in the
// remaining time for non-overdue tasks.
func UrgencyFactor(due *time.Time, now time.Time) FactorResult {
	if due == nil {
		return FactorResult{
			Name:   "urgency",
			Score:  unscheduledUrgency,
			Label:  "UNSCHEDULED",
			Reason: "no due date",
		}
	}

	hours := due.Sub(now).Hours()
	days := hours / 24

	var score float64
	var label, reason string
	switch {
	case hours < 0:
		overdueDays := -days
		score = math.Min(100, overdueBase+overduePerDay*overdueDays)
		label = "OVERDUE"
		reason = fmt.Sprintf("overdue by %.1f days", overdueDays)
	case hours <= 24:
		score = 90 + 10*(1-hours/24)
		label = "CRITICAL"
		reason = fmt.Sprintf("due in %.1f hours", hours)
	case days <= 3:
		score = 70 + 20*(1-(days-1)/2)
		label = "HIGH"
		reason = fmt.Sprintf("due in %.1f days", days)
	case days <= 7:
		score = 50 + 20*(1-(days-3)/4)
		label = "MEDIUM"
		reason = fmt.Sprintf("due in %.1f days", days)
	case days <= 14:
		score = 30 + 20*(1-(days-7)/7)
		label = "LOW"
		reason = fmt.Sprintf("due in %.1f days", days)
	default:
		score = math.Max(0, 30*(1-(days-14)/30))
		label = "MINIMAL"
		reason = fmt.Sprintf("due in %.1f days", days)
	}

	return FactorResult{Name: "urgency", Score: round2(score), Label: label, Reason: reason}
}

// ImportanceFactor maps the 1-10 rating linearly to 0-100. Out-of-range
// ratings clamp to the nearest bound.
func ImportanceFactor(rating int) FactorResult {
	if rating < 1 {
		rating = 1
	}
	if rating > 10 {
		rating = 10
	}

	var label string
	switch {
	case rating >= 9:
		label = "CRITICAL"
	case rating >= 7:
		label = "HIGH"
	case rating >= 5:
		label = "MEDIUM"
	case rating >= 3:
		label = "LOW"
	default:
		label = "MINIMAL"
	}

	return FactorResult{
		Name:   "importance",
		Score:  float64(rating * 10),
		Label:  label,
		Reason: fmt.Sprintf("rated %d/10", rating),
	}
}

// EffortFactor rewards quick wins: the fewer estimated hours, the higher the
// score. Monotonically non-increasing and continuous across bands. Negative
// or absurdly large estimates clamp rather than error.
func EffortFactor(hours float64) FactorResult {
	h := clamp(hours, 0, maxEffortHours)

	var score float64
	var label string
	switch {
	case h < 1:
		score = 100 - h*10
		label = "QUICK WIN"
	case h < 4:
		score = 90 - (h-1)*15
		label = "LOW EFFORT"
	case h < 8:
		score = 45 - (h-4)*7
		label = "MEDIUM EFFORT"
	default:
		score = math.Max(0, 17-(h-8)*2)
		label = "HIGH EFFORT"
	}

	return FactorResult{
		Name:   "effort",
		Score:  round2(score),
		Label:  label,
		Reason: fmt.Sprintf("%.1fh estimated", h),
	}
}

// DependencyFactor scores how much other work a task unblocks. Cycle
// membership overrides everything: circular tasks score zero until the cycle
// is resolved. For three or more blocked tasks the score climbs 2 points per
// extra blocker, capped at 100.
func DependencyFactor(blockedCount int, inCycle bool) FactorResult {
	if inCycle {
		return FactorResult{
			Name:   "dependency",
			Score:  0,
			Label:  "CIRCULAR",
			Reason: "circular dependency detected",
		}
	}

	var score float64
	var label, reason string
	switch {
	case blockedCount == 0:
		score = 20
		label = "BASELINE"
		reason = "blocks no tasks"
	case blockedCount == 1:
		score = 50
		label = "BLOCKER"
		reason = "blocks 1 task"
	case blockedCount == 2:
		score = 70
		label = "BLOCKER"
		reason = "blocks 2 tasks"
	default:
		score = math.Min(100, 90+float64(blockedCount-3)*2)
		label = "CRITICAL BLOCKER"
		reason = fmt.Sprintf("blocks %d tasks", blockedCount)
	}

	return FactorResult{Name: "dependency", Score: score, Label: label, Reason: reason}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
