package handler

import (
	"log/slog"
	"net/http"

	"descgen/internal/model"
	"descgen/internal/service"
)

// LearningHandler serves the aggregate learning-data views.
type LearningHandler struct {
	learning *service.LearningService
	logger   *slog.Logger
}

// NewLearningHandler creates a new LearningHandler.
func NewLearningHandler(learning *service.LearningService, logger *slog.Logger) *LearningHandler {
	return &LearningHandler{learning: learning, logger: logger}
}

// HandleDashboard returns recent corrections, saved descriptions and
// generation history in one response.
//
// GET /api/learning-data/dashboard
func (h *LearningHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.learning.Dashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		*model.Dashboard
	}{Success: true, Dashboard: dash})
}

// HandleStats returns activity totals plus recent counts.
//
// GET /api/learning-data/stats
func (h *LearningHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.learning.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool         `json:"success"`
		Stats   *model.Stats `json:"stats"`
	}{Success: true, Stats: stats})
}
