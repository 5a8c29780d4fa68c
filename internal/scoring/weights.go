package scoring

import (
	"fmt"
	"math"
)

// WeightSet defines the relative importance of the four scoring components.
// All weights must sum to 1.0 (±0.001 tolerance).
type WeightSet struct {
	Urgency    float64 `json:"urgency" yaml:"urgency"`
	Importance float64 `json:"importance" yaml:"importance"`
	Effort     float64 `json:"effort" yaml:"effort"`
	Dependency float64 `json:"dependency" yaml:"dependency"`
}

// Sum returns the total of all weights.
func (w WeightSet) Sum() float64 {
	return w.Urgency + w.Importance + w.Effort + w.Dependency
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w WeightSet) Validate() error {
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, v := range []float64{w.Urgency, w.Importance, w.Effort, w.Dependency} {
		if v < 0 {
			return fmt.Errorf("negative weight: %f", v)
		}
	}
	return nil
}

// Strategy is a named weight profile. The set of strategies is a closed table
// of fixed constants so the same batch always scores the same way.
type Strategy struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	BestFor     string    `json:"best_for"`
	Weights     WeightSet `json:"weights"`
}

// DefaultStrategy is used when the caller supplies no strategy name.
const DefaultStrategy = "balanced"

var strategies = []Strategy{
	{
		Name:        "balanced",
		Description: "Balanced approach considering all factors",
		BestFor:     "General task management with no specific constraints",
		Weights:     WeightSet{Urgency: 0.30, Importance: 0.30, Effort: 0.20, Dependency: 0.20},
	},
	{
		Name:        "fastest_wins",
		Description: "Prioritizes quick, low-effort tasks for momentum",
		BestFor:     "Building momentum and clearing backlog quickly",
		Weights:     WeightSet{Urgency: 0.15, Importance: 0.20, Effort: 0.50, Dependency: 0.15},
	},
	{
		Name:        "high_impact",
		Description: "Focuses on important tasks that unlock other work",
		BestFor:     "Maximum impact and removing blockers",
		Weights:     WeightSet{Urgency: 0.15, Importance: 0.45, Effort: 0.10, Dependency: 0.30},
	},
	{
		Name:        "deadline_driven",
		Description: "Heavily prioritizes imminent deadlines",
		BestFor:     "Crisis mode or when deadlines are critical",
		Weights:     WeightSet{Urgency: 0.60, Importance: 0.20, Effort: 0.10, Dependency: 0.10},
	},
}

// ResolveStrategy maps a strategy name to its weight profile. An empty name
// resolves to DefaultStrategy; any other unrecognized name is an error, never
// a silent fallback.
func ResolveStrategy(name string) (Strategy, error) {
	if name == "" {
		name = DefaultStrategy
	}
	for _, s := range strategies {
		if s.Name == name {
			return s, nil
		}
	}
	return Strategy{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Strategies returns the full strategy table in its fixed order.
func Strategies() []Strategy {
	out := make([]Strategy, len(strategies))
	copy(out, strategies)
	return out
}
