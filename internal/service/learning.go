package service

import (
	"context"
	"fmt"
	"time"

	"descgen/internal/model"
	"descgen/internal/repository"
)

// How many rows of each kind the dashboard carries.
const dashboardLimit = 10

// recentWindow is the lookback used by the stats endpoint.
const recentWindow = 7 * 24 * time.Hour

// LearningService aggregates the learning-data views across all stores.
type LearningService struct {
	descriptions repository.DescriptionRepository
	saved        repository.SavedDescriptionRepository
	corrections  repository.CorrectionRepository
}

// NewLearningService creates the learning-data service.
func NewLearningService(
	descriptions repository.DescriptionRepository,
	saved repository.SavedDescriptionRepository,
	corrections repository.CorrectionRepository,
) *LearningService {
	return &LearningService{
		descriptions: descriptions,
		saved:        saved,
		corrections:  corrections,
	}
}

// Dashboard returns the most recent corrections, saved descriptions and
// generation history in one view.
func (s *LearningService) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	corrections, err := s.corrections.ListRecent(ctx, dashboardLimit)
	if err != nil {
		return nil, fmt.Errorf("loading corrections: %w", err)
	}
	saved, err := s.saved.List(ctx, repository.SavedListOptions{Limit: dashboardLimit})
	if err != nil {
		return nil, fmt.Errorf("loading saved descriptions: %w", err)
	}
	generated, err := s.descriptions.ListRecent(ctx, dashboardLimit)
	if err != nil {
		return nil, fmt.Errorf("loading generation history: %w", err)
	}
	return &model.Dashboard{
		Corrections:           corrections,
		SavedDescriptions:     saved,
		GeneratedDescriptions: generated,
	}, nil
}

// Stats returns activity totals plus counts for the last seven days.
func (s *LearningService) Stats(ctx context.Context) (*model.Stats, error) {
	since := time.Now().UTC().Add(-recentWindow)

	totalCorrections, err := s.corrections.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting corrections: %w", err)
	}
	totalSaved, err := s.saved.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting saved descriptions: %w", err)
	}
	totalGenerated, err := s.descriptions.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting descriptions: %w", err)
	}
	recentCorrections, err := s.corrections.CountSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("counting recent corrections: %w", err)
	}
	recentGenerated, err := s.descriptions.CountSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("counting recent descriptions: %w", err)
	}

	return &model.Stats{
		TotalCorrections:  totalCorrections,
		TotalSaved:        totalSaved,
		TotalGenerated:    totalGenerated,
		RecentCorrections: recentCorrections,
		RecentGenerated:   recentGenerated,
	}, nil
}
