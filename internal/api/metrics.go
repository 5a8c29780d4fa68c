package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MikeSquared-Agency/Triage/internal/scoring"
)

var (
	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triage_analyses_total",
		Help: "Analysis requests by strategy and outcome.",
	}, []string{"strategy", "status"})

	cyclesDetectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "triage_cycles_detected_total",
		Help: "Tasks found on a dependency cycle across all analyses.",
	})

	batchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "triage_batch_size",
		Help:    "Number of tasks per analysis request.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})
)

func observeAnalysis(strategy, status string) {
	// Keep label cardinality bounded: only names from the strategy table are
	// recorded as-is.
	if _, err := scoring.ResolveStrategy(strategy); err != nil {
		strategy = "invalid"
	} else if strategy == "" {
		strategy = scoring.DefaultStrategy
	}
	analysesTotal.WithLabelValues(strategy, status).Inc()
}

func observeBatch(res *scoring.Result) {
	batchSize.Observe(float64(len(res.Ranked)))
	cyclesDetectedTotal.Add(float64(len(res.CycleWarning)))
}
