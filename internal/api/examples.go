package api

import (
	"context"
	"net/http"
	"net/url"

	"descgen/internal/model"
)

// ExampleRequest is the payload for adding or updating a manual example.
// Examples share the saved-description shape; the server stores them public
// so they feed the generation learning context.
type ExampleRequest struct {
	Type     model.DescriptionType `json:"type"`
	Title    string                `json:"title"`
	Content  string                `json:"content"`
	Category string                `json:"category"`
	Tags     []string              `json:"tags,omitempty"`
}

// AddExample stores a manual example and returns its ID.
func (c *Client) AddExample(ctx context.Context, req ExampleRequest) (string, error) {
	var out struct {
		ExampleID string `json:"example_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/examples/add", req, &out); err != nil {
		return "", err
	}
	return out.ExampleID, nil
}

// ListExamples lists the caller's manual examples, newest first.
func (c *Client) ListExamples(ctx context.Context) ([]model.SavedDescription, error) {
	var out struct {
		Examples []model.SavedDescription `json:"examples"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/examples/list", nil, &out); err != nil {
		return nil, err
	}
	return out.Examples, nil
}

// ListPublicExamples lists the public example pool used as learning context.
func (c *Client) ListPublicExamples(ctx context.Context) ([]model.SavedDescription, error) {
	var out struct {
		Examples []model.SavedDescription `json:"examples"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/examples/public", nil, &out); err != nil {
		return nil, err
	}
	return out.Examples, nil
}

// UpdateExample replaces the mutable fields of an example.
func (c *Client) UpdateExample(ctx context.Context, id string, req ExampleRequest) error {
	return c.do(ctx, http.MethodPut, "/api/examples/"+url.PathEscape(id), req, nil)
}

// DeleteExample removes a manual example permanently.
func (c *Client) DeleteExample(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/examples/"+url.PathEscape(id), nil, nil)
}
