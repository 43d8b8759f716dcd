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

// PromptService manages stored prompt templates and the one-active-per-type
// rule. Exclusivity itself is enforced transactionally by the repository;
// this layer owns validation and versioning.
type PromptService struct {
	prompts repository.PromptRepository
	logger  *slog.Logger
}

// NewPromptService creates the prompt service.
func NewPromptService(prompts repository.PromptRepository, logger *slog.Logger) *PromptService {
	return &PromptService{prompts: prompts, logger: logger}
}

// PromptInput carries the fields of a new prompt template.
type PromptInput struct {
	PromptType model.DescriptionType
	Title      string
	Content    string
	IsActive   bool
}

// Add stores a new template. When IsActive is set, siblings of the same type
// are deactivated in the same transaction.
func (s *PromptService) Add(ctx context.Context, in PromptInput) (*model.PromptTemplate, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if in.Title == "" || in.Content == "" {
		return nil, apperror.ValidationFailed("content", "missing required fields: title and content")
	}
	if !in.PromptType.Valid() {
		return nil, apperror.ValidationFailed("prompt_type", fmt.Sprintf("prompt type must be %q or %q", model.TypeGuitar, model.TypeCompany))
	}

	p := &model.PromptTemplate{
		PromptType: in.PromptType,
		Title:      in.Title,
		Content:    in.Content,
		IsActive:   in.IsActive,
		Version:    1,
	}
	if err := s.prompts.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("storing prompt: %w", err)
	}
	s.logger.Info("prompt added",
		slog.String("id", p.ID),
		slog.String("prompt_type", string(p.PromptType)),
		slog.Bool("is_active", p.IsActive),
	)
	return p, nil
}

// List returns all templates, newest first.
func (s *PromptService) List(ctx context.Context) ([]model.PromptTemplate, error) {
	return s.prompts.List(ctx)
}

// PromptUpdate carries the updatable fields of a template. Nil pointers leave
// the stored value untouched.
type PromptUpdate struct {
	Title    *string
	Content  *string
	IsActive *bool
}

// Update applies a partial update. Changing the content bumps the version.
func (s *PromptService) Update(ctx context.Context, id string, in PromptUpdate) (*model.PromptTemplate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "prompt ID is required")
	}
	p, err := s.prompts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperror.ValidationFailed("title", "title cannot be empty")
		}
		p.Title = title
	}
	if in.Content != nil {
		content := strings.TrimSpace(*in.Content)
		if content == "" {
			return nil, apperror.ValidationFailed("content", "content cannot be empty")
		}
		if content != p.Content {
			p.Version++
		}
		p.Content = content
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if err := s.prompts.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("updating prompt: %w", err)
	}
	return p, nil
}

// Activate makes one template the active one for its type.
func (s *PromptService) Activate(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "prompt ID is required")
	}
	if err := s.prompts.Activate(ctx, id); err != nil {
		return err
	}
	s.logger.Info("prompt activated", slog.String("id", id))
	return nil
}

// Delete removes a template permanently.
func (s *PromptService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "prompt ID is required")
	}
	return s.prompts.Delete(ctx, id)
}

// Active returns the active template for a type.
func (s *PromptService) Active(ctx context.Context, typ model.DescriptionType) (*model.PromptTemplate, error) {
	if !typ.Valid() {
		return nil, apperror.ValidationFailed("type", fmt.Sprintf("type must be %q or %q", model.TypeGuitar, model.TypeCompany))
	}
	return s.prompts.GetActive(ctx, typ)
}
