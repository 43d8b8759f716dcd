package api

import (
	"context"
	"net/http"
	"net/url"

	"descgen/internal/model"
)

// CorrectionRequest is the payload for submitting a human correction.
// DescriptionID is optional: it links the correction to the generation it
// replaces and is omitted from the wire entirely for free-text corrections.
type CorrectionRequest struct {
	OriginalText   string                `json:"original_text"`
	CorrectedText  string                `json:"corrected_text"`
	Type           model.DescriptionType `json:"type"`
	DescriptionID  string                `json:"description_id,omitempty"`
	CorrectionType string                `json:"correction_type,omitempty"`
	Notes          string                `json:"notes,omitempty"`
}

// SubmitCorrection records a correction and returns its ID.
func (c *Client) SubmitCorrection(ctx context.Context, req CorrectionRequest) (string, error) {
	var out struct {
		CorrectionID string `json:"correction_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/corrections/submit", req, &out); err != nil {
		return "", err
	}
	return out.CorrectionID, nil
}

// ListCorrections lists recorded corrections, newest first.
func (c *Client) ListCorrections(ctx context.Context) ([]model.Correction, error) {
	var out struct {
		Corrections []model.Correction `json:"corrections"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/corrections/list", nil, &out); err != nil {
		return nil, err
	}
	return out.Corrections, nil
}

// ApplyCorrection marks a correction as applied. Applied corrections no
// longer feed the generation learning context.
func (c *Client) ApplyCorrection(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/corrections/"+url.PathEscape(id)+"/apply", nil, nil)
}
