package handler

import (
	"log/slog"
	"net/http"

	"descgen/internal/model"
	"descgen/internal/service"
)

// DescriptionHandler serves generation requests and history lookups.
type DescriptionHandler struct {
	generation *service.GenerationService
	logger     *slog.Logger
}

// NewDescriptionHandler creates a new DescriptionHandler.
func NewDescriptionHandler(generation *service.GenerationService, logger *slog.Logger) *DescriptionHandler {
	return &DescriptionHandler{generation: generation, logger: logger}
}

type generateRequest struct {
	Type      model.DescriptionType `json:"type"`
	InputText string                `json:"input_text"`
}

// HandleGenerate produces a new description.
//
// POST /api/descriptions/generate
// Body: {"type": "guitar", "input_text": "..."}
func (h *DescriptionHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	desc, err := h.generation.Generate(r.Context(), req.Type, req.InputText)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success        bool                  `json:"success"`
		Description    string                `json:"description"`
		DescriptionID  string                `json:"description_id"`
		Type           model.DescriptionType `json:"type"`
		ProcessingTime float64               `json:"processing_time"`
	}{
		Success:        true,
		Description:    desc.GeneratedDescription,
		DescriptionID:  desc.ID,
		Type:           desc.Type,
		ProcessingTime: desc.ProcessingTime,
	})
}

// HandleGet returns one stored generation result.
//
// GET /api/descriptions/{id}
func (h *DescriptionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	desc, err := h.generation.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success     bool                        `json:"success"`
		Description *model.GeneratedDescription `json:"description"`
	}{Success: true, Description: desc})
}
