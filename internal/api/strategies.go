package api

import (
	"net/http"

	"github.com/MikeSquared-Agency/Triage/internal/scoring"
)

type StrategiesHandler struct{}

func NewStrategiesHandler() *StrategiesHandler {
	return &StrategiesHandler{}
}

// List handles GET /api/v1/strategies — a pure lookup over the fixed
// strategy table, exposed for self-documentation.
func (h *StrategiesHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"default":    scoring.DefaultStrategy,
		"strategies": scoring.Strategies(),
	})
}
