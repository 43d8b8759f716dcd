package workflow

import (
	"context"
	"fmt"
	"strings"

	"descgen/internal/api"
	"descgen/internal/apperror"
	"descgen/internal/model"
)

// CorrectionDraft freezes the text being corrected at the moment correction
// mode is entered. The displayed output may be replaced by a later generation
// before the user submits; the draft guarantees the correction is recorded
// against the text the user actually saw, not whatever is current at submit
// time.
type CorrectionDraft struct {
	Original      string
	Type          model.DescriptionType
	DescriptionID string

	// FromHistory marks drafts opened against a listed/archived item rather
	// than the live generation; callers refresh the dashboards after
	// submitting those.
	FromHistory bool
}

// BeginCorrection opens a draft against the current generation context.
func (w *Workflow) BeginCorrection() (*CorrectionDraft, error) {
	current, ok := w.Current()
	if !ok {
		return nil, apperror.ValidationFailed("original_text", "nothing to correct: no description has been generated or viewed")
	}
	return &CorrectionDraft{
		Original:      current.Output,
		Type:          current.Type,
		DescriptionID: current.DescriptionID,
	}, nil
}

// BeginCorrectionFor opens a draft against an item from the generation
// history.
func (w *Workflow) BeginCorrectionFor(desc *model.GeneratedDescription) *CorrectionDraft {
	return &CorrectionDraft{
		Original:      desc.GeneratedDescription,
		Type:          desc.Type,
		DescriptionID: desc.ID,
		FromHistory:   true,
	}
}

// NewFreeTextDraft opens a draft for a correction with no known source
// generation; description_id stays off the wire entirely.
func NewFreeTextDraft(original string, typ model.DescriptionType) *CorrectionDraft {
	return &CorrectionDraft{Original: original, Type: typ}
}

// SubmitCorrection records the corrected text for a draft. On success the
// corrected text becomes the displayed output for the draft's type.
func (w *Workflow) SubmitCorrection(ctx context.Context, draft *CorrectionDraft, corrected, notes string) error {
	corrected = strings.TrimSpace(corrected)
	if corrected == "" {
		return apperror.ValidationFailed("corrected_text", "corrected text is required")
	}
	if strings.TrimSpace(draft.Original) == "" {
		return apperror.ValidationFailed("original_text", "original text is required")
	}

	if err := w.begin("correct"); err != nil {
		return err
	}
	defer w.end("correct")

	_, err := w.backend.SubmitCorrection(ctx, api.CorrectionRequest{
		OriginalText:  draft.Original,
		CorrectedText: corrected,
		Type:          draft.Type,
		DescriptionID: draft.DescriptionID,
		Notes:         notes,
	})
	if err != nil {
		return fmt.Errorf("submitting correction: %w", err)
	}

	w.setCurrent(Context{
		Type:          draft.Type,
		Output:        corrected,
		DescriptionID: draft.DescriptionID,
	})
	return nil
}
