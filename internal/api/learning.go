package api

import (
	"context"
	"net/http"

	"descgen/internal/model"
)

// Dashboard fetches the aggregate learning-data view: recent corrections,
// saved descriptions and generation history in one call.
func (c *Client) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	var out model.Dashboard
	if err := c.do(ctx, http.MethodGet, "/api/learning-data/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats fetches activity totals and the recent (7 day) counts.
func (c *Client) Stats(ctx context.Context) (*model.Stats, error) {
	var out struct {
		Stats model.Stats `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/learning-data/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out.Stats, nil
}
