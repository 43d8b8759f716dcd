package api

import (
	"context"
	"net/http"
	"net/url"

	"descgen/internal/model"
)

// SaveRequest is the payload for saving a description into the library.
type SaveRequest struct {
	Type     model.DescriptionType `json:"type"`
	Content  string                `json:"content"`
	Title    string                `json:"title"`
	Category string                `json:"category"`
	Tags     []string              `json:"tags"`
	IsPublic bool                  `json:"is_public"`
}

// MetadataSuggestion is a best-effort category/tags hint for a save form.
type MetadataSuggestion struct {
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// SaveDescription stores a curated description and returns its new ID.
func (c *Client) SaveDescription(ctx context.Context, req SaveRequest) (string, error) {
	var out struct {
		DescriptionID string `json:"description_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/saved-descriptions/save", req, &out); err != nil {
		return "", err
	}
	return out.DescriptionID, nil
}

// SuggestMetadata asks the backend for a category and tags matching the
// content. Callers treat failures as non-fatal — a save proceeds without
// suggestions.
func (c *Client) SuggestMetadata(ctx context.Context, content string, typ model.DescriptionType) (*MetadataSuggestion, error) {
	req := struct {
		Content string                `json:"content"`
		Type    model.DescriptionType `json:"type"`
	}{content, typ}

	var out MetadataSuggestion
	if err := c.do(ctx, http.MethodPost, "/api/saved-descriptions/suggest-metadata", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSavedDescription fetches one saved description by ID.
func (c *Client) GetSavedDescription(ctx context.Context, id string) (*model.SavedDescription, error) {
	var out struct {
		Description model.SavedDescription `json:"description"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/saved-descriptions/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Description, nil
}

// ListSavedDescriptions lists the caller's saved descriptions, newest first.
func (c *Client) ListSavedDescriptions(ctx context.Context) ([]model.SavedDescription, error) {
	var out struct {
		Descriptions []model.SavedDescription `json:"descriptions"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/saved-descriptions/list", nil, &out); err != nil {
		return nil, err
	}
	return out.Descriptions, nil
}

// ToggleVisibility flips a saved description's is_public flag and returns the
// new value. Applying it twice restores the original state.
func (c *Client) ToggleVisibility(ctx context.Context, id string) (bool, error) {
	var out struct {
		IsPublic bool `json:"is_public"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/saved-descriptions/"+url.PathEscape(id)+"/toggle-active", nil, &out); err != nil {
		return false, err
	}
	return out.IsPublic, nil
}

// DeleteSavedDescription removes a saved description permanently.
func (c *Client) DeleteSavedDescription(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/saved-descriptions/"+url.PathEscape(id), nil, nil)
}
