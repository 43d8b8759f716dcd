package handler

import (
	"log/slog"
	"net/http"

	"descgen/internal/model"
	"descgen/internal/service"
)

// CorrectionHandler serves correction submission, listing and application.
type CorrectionHandler struct {
	corrections *service.CorrectionService
	logger      *slog.Logger
}

// NewCorrectionHandler creates a new CorrectionHandler.
func NewCorrectionHandler(corrections *service.CorrectionService, logger *slog.Logger) *CorrectionHandler {
	return &CorrectionHandler{corrections: corrections, logger: logger}
}

type correctionRequest struct {
	OriginalText   string                `json:"original_text"`
	CorrectedText  string                `json:"corrected_text"`
	Type           model.DescriptionType `json:"type"`
	DescriptionID  string                `json:"description_id"`
	CorrectionType string                `json:"correction_type"`
	Notes          string                `json:"notes"`
}

// HandleSubmit stores a new correction.
//
// POST /api/corrections/submit
func (h *CorrectionHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req correctionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	c, err := h.corrections.Submit(r.Context(), service.CorrectionInput{
		Original:       req.OriginalText,
		Corrected:      req.CorrectedText,
		Type:           req.Type,
		DescriptionID:  req.DescriptionID,
		CorrectionType: req.CorrectionType,
		Notes:          req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success      bool   `json:"success"`
		CorrectionID string `json:"correction_id"`
	}{Success: true, CorrectionID: c.ID})
}

// HandleList returns the most recent corrections, newest first.
//
// GET /api/corrections/list
func (h *CorrectionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	corrections, err := h.corrections.List(r.Context(), 0)
	if err != nil {
		writeError(w, err)
		return
	}
	if corrections == nil {
		corrections = []model.Correction{}
	}

	writeJSON(w, http.StatusOK, struct {
		Success     bool               `json:"success"`
		Corrections []model.Correction `json:"corrections"`
	}{Success: true, Corrections: corrections})
}

// HandleApply marks a correction as applied.
//
// POST /api/corrections/{id}/apply
func (h *CorrectionHandler) HandleApply(w http.ResponseWriter, r *http.Request) {
	if err := h.corrections.Apply(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
	}{Success: true})
}
