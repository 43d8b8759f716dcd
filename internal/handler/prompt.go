package handler

import (
	"log/slog"
	"net/http"

	"descgen/internal/model"
	"descgen/internal/service"
)

// PromptHandler serves prompt-template management.
type PromptHandler struct {
	prompts *service.PromptService
	logger  *slog.Logger
}

// NewPromptHandler creates a new PromptHandler.
func NewPromptHandler(prompts *service.PromptService, logger *slog.Logger) *PromptHandler {
	return &PromptHandler{prompts: prompts, logger: logger}
}

type promptRequest struct {
	PromptType model.DescriptionType `json:"prompt_type"`
	Title      string                `json:"title"`
	Content    string                `json:"content"`
	IsActive   *bool                 `json:"is_active"`
}

// HandleAdd stores a new prompt template.
//
// POST /api/prompts/add
func (h *PromptHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	// An absent is_active defaults to active: a newly added template is
	// expected to steer generation unless the caller opts out.
	in := service.PromptInput{
		PromptType: req.PromptType,
		Title:      req.Title,
		Content:    req.Content,
		IsActive:   true,
	}
	if req.IsActive != nil {
		in.IsActive = *req.IsActive
	}

	p, err := h.prompts.Add(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success  bool   `json:"success"`
		PromptID string `json:"prompt_id"`
	}{Success: true, PromptID: p.ID})
}

// HandleList returns all templates, newest first.
//
// GET /api/prompts/list
func (h *PromptHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	prompts, err := h.prompts.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if prompts == nil {
		prompts = []model.PromptTemplate{}
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool                   `json:"success"`
		Prompts []model.PromptTemplate `json:"prompts"`
	}{Success: true, Prompts: prompts})
}

// HandleUpdate applies a partial update to a template.
//
// PUT /api/prompts/{id}
func (h *PromptHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    *string `json:"title"`
		Content  *string `json:"content"`
		IsActive *bool   `json:"is_active"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	_, err := h.prompts.Update(r.Context(), r.PathValue("id"), service.PromptUpdate{
		Title:    req.Title,
		Content:  req.Content,
		IsActive: req.IsActive,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
	}{Success: true})
}

// HandleActivate makes one template the active one for its type, deactivating
// its siblings.
//
// POST /api/prompts/activate/{id}
func (h *PromptHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	if err := h.prompts.Activate(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
	}{Success: true})
}

// HandleDelete removes a template permanently.
//
// DELETE /api/prompts/{id}
func (h *PromptHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.prompts.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
	}{Success: true})
}

// HandleActive returns the active template for a type.
//
// GET /api/prompts/active/{type}
func (h *PromptHandler) HandleActive(w http.ResponseWriter, r *http.Request) {
	p, err := h.prompts.Active(r.Context(), model.DescriptionType(r.PathValue("type")))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool                  `json:"success"`
		Prompt  *model.PromptTemplate `json:"prompt"`
	}{Success: true, Prompt: p})
}
