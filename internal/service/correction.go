package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"descgen/internal/apperror"
	"descgen/internal/model"
	"descgen/internal/repository"
)

// CorrectionService records user-supplied text corrections and marks them
// applied once they have been folded into the model's behaviour.
type CorrectionService struct {
	corrections repository.CorrectionRepository
	logger      *slog.Logger
}

// NewCorrectionService creates the correction service.
func NewCorrectionService(corrections repository.CorrectionRepository, logger *slog.Logger) *CorrectionService {
	return &CorrectionService{corrections: corrections, logger: logger}
}

// CorrectionInput carries the fields of a new correction. DescriptionID is
// optional; free-text corrections have no source generation.
type CorrectionInput struct {
	Original       string
	Corrected      string
	Type           model.DescriptionType
	DescriptionID  string
	CorrectionType string
	Notes          string
}

// Submit validates and stores a correction.
func (s *CorrectionService) Submit(ctx context.Context, in CorrectionInput) (*model.Correction, error) {
	in.Original = strings.TrimSpace(in.Original)
	in.Corrected = strings.TrimSpace(in.Corrected)
	if in.Original == "" || in.Corrected == "" {
		return nil, apperror.ValidationFailed("corrected_text", "missing required fields: original_text and corrected_text")
	}
	if !in.Type.Valid() {
		return nil, apperror.ValidationFailed("type", fmt.Sprintf("type must be %q or %q", model.TypeGuitar, model.TypeCompany))
	}
	if in.Original == in.Corrected {
		return nil, apperror.ValidationFailed("corrected_text", "corrected text is identical to the original")
	}

	c := &model.Correction{
		Original:       in.Original,
		Corrected:      in.Corrected,
		Type:           in.Type,
		CorrectionType: strings.TrimSpace(in.CorrectionType),
		DescriptionID:  strings.TrimSpace(in.DescriptionID),
		Notes:          strings.TrimSpace(in.Notes),
	}
	if err := s.corrections.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("storing correction: %w", err)
	}
	s.logger.Info("correction submitted",
		slog.String("id", c.ID),
		slog.String("type", string(c.Type)),
		slog.Bool("from_history", c.DescriptionID != ""),
	)
	return c, nil
}

// defaultListLimit caps list endpoints that do not ask for a specific size.
const defaultListLimit = 50

// List returns the most recent corrections, newest first.
func (s *CorrectionService) List(ctx context.Context, limit int) ([]model.Correction, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.corrections.ListRecent(ctx, limit)
}

// Apply marks a correction as applied, removing it from the pool that feeds
// generation context.
func (s *CorrectionService) Apply(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "correction ID is required")
	}
	if err := s.corrections.MarkApplied(ctx, id); err != nil {
		return err
	}
	s.logger.Info("correction applied", slog.String("id", id))
	return nil
}
