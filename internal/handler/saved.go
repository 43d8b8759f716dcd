package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"descgen/internal/model"
	"descgen/internal/repository"
	"descgen/internal/service"
)

// SavedHandler serves the saved-description library.
type SavedHandler struct {
	library *service.LibraryService
	logger  *slog.Logger
}

// NewSavedHandler creates a new SavedHandler.
func NewSavedHandler(library *service.LibraryService, logger *slog.Logger) *SavedHandler {
	return &SavedHandler{library: library, logger: logger}
}

type saveRequest struct {
	Type     model.DescriptionType `json:"type"`
	Content  string                `json:"content"`
	Title    string                `json:"title"`
	Category string                `json:"category"`
	Tags     []string              `json:"tags"`
	IsPublic bool                  `json:"is_public"`
}

// HandleSave stores a new library record.
//
// POST /api/saved-descriptions/save
func (h *SavedHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	desc, err := h.library.Save(r.Context(), service.SaveInput{
		Type:     req.Type,
		Content:  req.Content,
		Title:    req.Title,
		Category: req.Category,
		Tags:     req.Tags,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success       bool   `json:"success"`
		DescriptionID string `json:"description_id"`
	}{Success: true, DescriptionID: desc.ID})
}

type suggestRequest struct {
	Content string                `json:"content"`
	Type    model.DescriptionType `json:"type"`
}

// HandleSuggestMetadata proposes a category and tags for content about to be
// saved. Suggestions lean on the public library; an empty library yields
// empty suggestions, not an error.
//
// POST /api/saved-descriptions/suggest-metadata
func (h *SavedHandler) HandleSuggestMetadata(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	category, tags, err := h.library.SuggestMetadata(r.Context(), req.Type, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	if tags == nil {
		tags = []string{}
	}

	writeJSON(w, http.StatusOK, struct {
		Success  bool     `json:"success"`
		Category string   `json:"category"`
		Tags     []string `json:"tags"`
	}{Success: true, Category: category, Tags: tags})
}

// HandleList returns saved descriptions, newest first. Optional query
// parameters: type, public, limit.
//
// GET /api/saved-descriptions/list
func (h *SavedHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	opts := repository.SavedListOptions{}
	if t := r.URL.Query().Get("type"); t != "" {
		opts.Type = model.DescriptionType(t)
	}
	if r.URL.Query().Get("public") == "true" {
		opts.PublicOnly = true
	}
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n > 0 {
		opts.Limit = n
	}

	descriptions, err := h.library.List(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	if descriptions == nil {
		descriptions = []model.SavedDescription{}
	}

	writeJSON(w, http.StatusOK, struct {
		Success      bool                     `json:"success"`
		Descriptions []model.SavedDescription `json:"descriptions"`
	}{Success: true, Descriptions: descriptions})
}

// HandleGet returns one saved description.
//
// GET /api/saved-descriptions/{id}
func (h *SavedHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	desc, err := h.library.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success     bool                    `json:"success"`
		Description *model.SavedDescription `json:"description"`
	}{Success: true, Description: desc})
}

// HandleToggleActive flips the public flag and reports the new value.
//
// POST /api/saved-descriptions/{id}/toggle-active
func (h *SavedHandler) HandleToggleActive(w http.ResponseWriter, r *http.Request) {
	isPublic, err := h.library.ToggleVisibility(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success  bool `json:"success"`
		IsPublic bool `json:"is_public"`
	}{Success: true, IsPublic: isPublic})
}

// HandleDelete removes a saved description permanently.
//
// DELETE /api/saved-descriptions/{id}
func (h *SavedHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.library.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
	}{Success: true})
}
