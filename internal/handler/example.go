package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"descgen/internal/model"
	"descgen/internal/repository"
	"descgen/internal/service"
)

// ExampleHandler serves manual examples. Examples are saved descriptions with
// visibility forced public, so this handler delegates to the library service.
type ExampleHandler struct {
	library *service.LibraryService
	logger  *slog.Logger
}

// NewExampleHandler creates a new ExampleHandler.
func NewExampleHandler(library *service.LibraryService, logger *slog.Logger) *ExampleHandler {
	return &ExampleHandler{library: library, logger: logger}
}

type exampleRequest struct {
	Type     model.DescriptionType `json:"type"`
	Title    string                `json:"title"`
	Content  string                `json:"content"`
	Category string                `json:"category"`
	Tags     []string              `json:"tags"`
}

// HandleAdd stores a new manual example.
//
// POST /api/examples/add
func (h *ExampleHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req exampleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	example, err := h.library.AddExample(r.Context(), service.SaveInput{
		Type:     req.Type,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success   bool   `json:"success"`
		ExampleID string `json:"example_id"`
	}{Success: true, ExampleID: example.ID})
}

// HandleList returns all examples, newest first.
//
// GET /api/examples/list
func (h *ExampleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// HandlePublic returns only the publicly visible examples, the pool that
// feeds generation context. Optional query parameters: type, limit.
//
// GET /api/examples/public
func (h *ExampleHandler) HandlePublic(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *ExampleHandler) list(w http.ResponseWriter, r *http.Request, publicOnly bool) {
	var typ model.DescriptionType
	if t := r.URL.Query().Get("type"); t != "" {
		typ = model.DescriptionType(t)
	}
	limit := 0
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n > 0 {
		limit = n
	}

	var (
		examples []model.SavedDescription
		err      error
	)
	if publicOnly {
		examples, err = h.library.ListPublic(r.Context(), typ, limit)
	} else {
		examples, err = h.library.List(r.Context(), repository.SavedListOptions{Type: typ, Limit: limit})
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if examples == nil {
		examples = []model.SavedDescription{}
	}

	writeJSON(w, http.StatusOK, struct {
		Success  bool                     `json:"success"`
		Examples []model.SavedDescription `json:"examples"`
	}{Success: true, Examples: examples})
}

// HandleUpdate applies a partial update to an example.
//
// PUT /api/examples/{id}
func (h *ExampleHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    *string  `json:"title"`
		Content  *string  `json:"content"`
		Category *string  `json:"category"`
		Tags     []string `json:"tags"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	_, err := h.library.Update(r.Context(), r.PathValue("id"), service.UpdateInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
	}{Success: true})
}

// HandleDelete removes an example permanently.
//
// DELETE /api/examples/{id}
func (h *ExampleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.library.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
	}{Success: true})
}
