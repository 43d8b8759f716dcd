package api

import (
	"context"
	"net/http"
	"net/url"

	"descgen/internal/model"
)

// PromptRequest is the payload for creating a prompt template. When IsActive
// is nil the server defaults to active (and deactivates siblings of the same
// type).
type PromptRequest struct {
	PromptType model.DescriptionType `json:"prompt_type"`
	Title      string                `json:"title"`
	Content    string                `json:"content"`
	IsActive   *bool                 `json:"is_active,omitempty"`
}

// PromptUpdate carries partial updates: nil fields are left unchanged.
type PromptUpdate struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// AddPrompt stores a new prompt template and returns its ID.
func (c *Client) AddPrompt(ctx context.Context, req PromptRequest) (string, error) {
	var out struct {
		PromptID string `json:"prompt_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/prompts/add", req, &out); err != nil {
		return "", err
	}
	return out.PromptID, nil
}

// ListPrompts lists all prompt templates, newest first.
func (c *Client) ListPrompts(ctx context.Context) ([]model.PromptTemplate, error) {
	var out struct {
		Prompts []model.PromptTemplate `json:"prompts"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/prompts/list", nil, &out); err != nil {
		return nil, err
	}
	return out.Prompts, nil
}

// UpdatePrompt applies a partial update and bumps the template version.
func (c *Client) UpdatePrompt(ctx context.Context, id string, update PromptUpdate) error {
	return c.do(ctx, http.MethodPut, "/api/prompts/"+url.PathEscape(id), update, nil)
}

// ActivatePrompt makes the template the active one for its prompt type.
// Exclusivity is the server's responsibility; the client observes the result
// by re-fetching the list.
func (c *Client) ActivatePrompt(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/prompts/activate/"+url.PathEscape(id), nil, nil)
}

// DeletePrompt removes a prompt template permanently.
func (c *Client) DeletePrompt(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/prompts/"+url.PathEscape(id), nil, nil)
}

// GetActivePrompt fetches the active template for a type. Returns a remote
// error when no template of that type is active.
func (c *Client) GetActivePrompt(ctx context.Context, typ model.DescriptionType) (*model.PromptTemplate, error) {
	var out struct {
		Prompt model.PromptTemplate `json:"prompt"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/prompts/active/"+url.PathEscape(string(typ)), nil, &out); err != nil {
		return nil, err
	}
	return &out.Prompt, nil
}
