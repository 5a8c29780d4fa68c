package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Triage/internal/config"
	"github.com/MikeSquared-Agency/Triage/internal/events"
	"github.com/MikeSquared-Agency/Triage/internal/scoring"
)

func NewRouter(analyzer *scoring.Analyzer, ev events.Client, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(cfg.Server.RateLimitPerMin))

	analyze := NewAnalyzeHandler(analyzer, ev, cfg.Analysis)
	strategies := NewStrategiesHandler()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/tasks/analyze", analyze.Analyze)
		r.Post("/tasks/suggest", analyze.Suggest)
		r.Get("/strategies", strategies.List)
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
