package api

import (
	"context"
	"net/http"
	"net/url"

	"descgen/internal/model"
)

// GenerateResult is the payload of a successful generation call. The full
// record (input text, token counts, timestamps) is retrievable afterwards via
// GetDescription using DescriptionID.
type GenerateResult struct {
	Description    string                `json:"description"`
	DescriptionID  string                `json:"description_id"`
	Type           model.DescriptionType `json:"type"`
	ProcessingTime float64               `json:"processing_time"`
}

// Generate asks the backend to produce a description of the given type from
// free-form input text. Validation of the input happens in the workflow layer;
// this method only speaks the wire protocol.
func (c *Client) Generate(ctx context.Context, typ model.DescriptionType, inputText string) (*GenerateResult, error) {
	req := struct {
		Type      model.DescriptionType `json:"type"`
		InputText string                `json:"input_text"`
	}{typ, inputText}

	var out GenerateResult
	if err := c.do(ctx, http.MethodPost, "/api/descriptions/generate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDescription fetches one generated description by its ID.
func (c *Client) GetDescription(ctx context.Context, id string) (*model.GeneratedDescription, error) {
	var out struct {
		Description model.GeneratedDescription `json:"description"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/descriptions/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Description, nil
}
