package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"descgen/internal/apperror"
	"descgen/internal/model"
	"descgen/internal/repository"
)

const (
	maxSuggestedTags = 5
	// Cap on public-library reads: both the public list view and the
	// metadata heuristic's sample.
	maxPublicRows = 50
)

// LibraryService manages the saved-description library and, since manual
// examples are saved descriptions with IsPublic forced on, the example pool
// as well.
type LibraryService struct {
	saved  repository.SavedDescriptionRepository
	logger *slog.Logger
}

// NewLibraryService creates the library service.
func NewLibraryService(saved repository.SavedDescriptionRepository, logger *slog.Logger) *LibraryService {
	return &LibraryService{saved: saved, logger: logger}
}

// SaveInput carries the caller-supplied fields for a new library record.
type SaveInput struct {
	Type     model.DescriptionType
	Content  string
	Title    string
	Category string
	Tags     []string
	IsPublic bool
}

func (in *SaveInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.Category = strings.TrimSpace(in.Category)
	if in.Content == "" {
		return apperror.ValidationFailed("content", "content is required")
	}
	if in.Title == "" {
		return apperror.ValidationFailed("title", "title is required")
	}
	if len(in.Title) > MaxTitleLength {
		return apperror.ValidationFailed("title",
			fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
	}
	if len(in.Content) > MaxContentLength {
		return apperror.ValidationFailed("content",
			fmt.Sprintf("content must be %d characters or less", MaxContentLength))
	}
	if !in.Type.Valid() {
		return apperror.ValidationFailed("type", fmt.Sprintf("type must be %q or %q", model.TypeGuitar, model.TypeCompany))
	}
	return nil
}

// Save stores a new library record and returns it.
func (s *LibraryService) Save(ctx context.Context, in SaveInput) (*model.SavedDescription, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	desc := &model.SavedDescription{
		Title:    in.Title,
		Content:  in.Content,
		Type:     in.Type,
		Category: in.Category,
		Tags:     cleanTags(in.Tags),
		IsPublic: in.IsPublic,
	}
	if err := s.saved.Create(ctx, desc); err != nil {
		return nil, fmt.Errorf("saving description: %w", err)
	}
	s.logger.Info("description saved",
		slog.String("id", desc.ID),
		slog.String("type", string(desc.Type)),
		slog.Bool("is_public", desc.IsPublic),
	)
	return desc, nil
}

// AddExample stores a manual example: a library record whose visibility is
// always public so it can feed generation context.
func (s *LibraryService) AddExample(ctx context.Context, in SaveInput) (*model.SavedDescription, error) {
	in.IsPublic = true
	return s.Save(ctx, in)
}

// GetByID returns one saved description.
func (s *LibraryService) GetByID(ctx context.Context, id string) (*model.SavedDescription, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "description ID is required")
	}
	return s.saved.GetByID(ctx, id)
}

// List returns saved descriptions, newest first.
func (s *LibraryService) List(ctx context.Context, opts repository.SavedListOptions) ([]model.SavedDescription, error) {
	return s.saved.List(ctx, opts)
}

// ListPublic returns only publicly visible records, optionally filtered by
// type. The view is capped at 50 rows unless the caller asks for fewer.
func (s *LibraryService) ListPublic(ctx context.Context, typ model.DescriptionType, limit int) ([]model.SavedDescription, error) {
	if limit <= 0 || limit > maxPublicRows {
		limit = maxPublicRows
	}
	return s.saved.List(ctx, repository.SavedListOptions{
		PublicOnly: true,
		Type:       typ,
		Limit:      limit,
	})
}

// UpdateInput carries the updatable fields of a library record. Nil pointers
// leave the stored value untouched.
type UpdateInput struct {
	Title    *string
	Content  *string
	Category *string
	Tags     []string
	IsPublic *bool
}

// Update applies a partial update and returns the stored record.
func (s *LibraryService) Update(ctx context.Context, id string, in UpdateInput) (*model.SavedDescription, error) {
	desc, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperror.ValidationFailed("title", "title cannot be empty")
		}
		desc.Title = title
	}
	if in.Content != nil {
		content := strings.TrimSpace(*in.Content)
		if content == "" {
			return nil, apperror.ValidationFailed("content", "content cannot be empty")
		}
		desc.Content = content
	}
	if in.Category != nil {
		desc.Category = strings.TrimSpace(*in.Category)
	}
	if in.Tags != nil {
		desc.Tags = cleanTags(in.Tags)
	}
	if in.IsPublic != nil {
		desc.IsPublic = *in.IsPublic
	}
	if err := s.saved.Update(ctx, desc); err != nil {
		return nil, fmt.Errorf("updating description: %w", err)
	}
	return desc, nil
}

// ToggleVisibility flips the public flag and returns the new value.
func (s *LibraryService) ToggleVisibility(ctx context.Context, id string) (bool, error) {
	desc, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	next := !desc.IsPublic
	if err := s.saved.SetPublic(ctx, id, next); err != nil {
		return false, fmt.Errorf("toggling visibility: %w", err)
	}
	return next, nil
}

// Delete removes a saved description permanently.
func (s *LibraryService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "description ID is required")
	}
	return s.saved.Delete(ctx, id)
}

// SuggestMetadata proposes a category and tags for content about to be saved.
// The heuristic leans on the existing public library: the most frequent
// category among public records of the same type, and the most frequent tags
// that also appear as words in the content. It never fails hard; with no
// usable data it returns empty suggestions.
func (s *LibraryService) SuggestMetadata(ctx context.Context, typ model.DescriptionType, content string) (category string, tags []string, err error) {
	if !typ.Valid() {
		return "", nil, apperror.ValidationFailed("type", fmt.Sprintf("type must be %q or %q", model.TypeGuitar, model.TypeCompany))
	}

	sample, err := s.saved.List(ctx, repository.SavedListOptions{
		PublicOnly: true,
		Type:       typ,
		Limit:      maxPublicRows,
	})
	if err != nil {
		return "", nil, fmt.Errorf("sampling library for suggestions: %w", err)
	}

	categories := map[string]int{}
	tagCounts := map[string]int{}
	for _, d := range sample {
		if d.Category != "" {
			categories[d.Category]++
		}
		for _, t := range d.Tags {
			tagCounts[t]++
		}
	}

	best := 0
	for c, n := range categories {
		if n > best || (n == best && c < category) {
			category, best = c, n
		}
	}

	words := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(content)) {
		words[strings.Trim(w, ".,;:!?\"'()")] = true
	}
	type scored struct {
		tag   string
		count int
	}
	var candidates []scored
	for t, n := range tagCounts {
		if words[strings.ToLower(t)] {
			n += 10 // tags echoed by the content win
		}
		candidates = append(candidates, scored{t, n})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].count != candidates[j].count {
			return candidates[i].count > candidates[j].count
		}
		return candidates[i].tag < candidates[j].tag
	})
	for i := 0; i < len(candidates) && i < maxSuggestedTags; i++ {
		tags = append(tags, candidates[i].tag)
	}
	return category, tags, nil
}

// cleanTags trims entries and drops empties and duplicates, preserving order.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]bool{}
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
