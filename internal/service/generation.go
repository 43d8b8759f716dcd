// Package service contains the business logic of the reference server: prompt
// assembly, validation, and the rules each entity carries. Handlers stay
// HTTP-only; repositories stay SQL-only; everything in between lives here.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"descgen/internal/apperror"
	"descgen/internal/generator"
	"descgen/internal/model"
	"descgen/internal/repository"
)

// Validation limits shared by the endpoints.
const (
	MaxInputLength   = 10000
	MaxTitleLength   = 200
	MaxContentLength = 100000

	// Learning-context sizes, matching what the generation prompt can
	// reasonably carry.
	contextCorrections = 5
	contextExamples    = 3
)

// GenerationService produces descriptions and records them in the history.
type GenerationService struct {
	descriptions repository.DescriptionRepository
	corrections  repository.CorrectionRepository
	saved        repository.SavedDescriptionRepository
	prompts      repository.PromptRepository
	gen          generator.Generator
	logger       *slog.Logger
}

// NewGenerationService wires the generation pipeline.
func NewGenerationService(
	descriptions repository.DescriptionRepository,
	corrections repository.CorrectionRepository,
	saved repository.SavedDescriptionRepository,
	prompts repository.PromptRepository,
	gen generator.Generator,
	logger *slog.Logger,
) *GenerationService {
	return &GenerationService{
		descriptions: descriptions,
		corrections:  corrections,
		saved:        saved,
		prompts:      prompts,
		gen:          gen,
		logger:       logger,
	}
}

// Generate produces a description, persists it and returns the stored record.
// The prompt is the active template for the type when one exists, otherwise
// the built-in default, in both cases enriched with recent corrections and
// public examples as learning context.
func (s *GenerationService) Generate(ctx context.Context, typ model.DescriptionType, inputText string) (*model.GeneratedDescription, error) {
	inputText = strings.TrimSpace(inputText)
	if inputText == "" {
		return nil, apperror.ValidationFailed("input_text", "missing required fields: input_text and type")
	}
	if !typ.Valid() {
		return nil, apperror.ValidationFailed("type", fmt.Sprintf("type must be %q or %q", model.TypeGuitar, model.TypeCompany))
	}
	if len(inputText) > MaxInputLength {
		return nil, apperror.ValidationFailed("input_text",
			fmt.Sprintf("input text must be %d characters or less", MaxInputLength))
	}

	start := time.Now()
	prompt := s.buildPrompt(ctx, typ, inputText)

	res, err := s.gen.Generate(ctx, generator.SystemPrompt, prompt)
	if err != nil {
		s.logger.Error("generation failed",
			slog.String("type", string(typ)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("generating description: %w", err)
	}

	desc := &model.GeneratedDescription{
		Type:                 typ,
		InputText:            inputText,
		GeneratedDescription: strings.TrimSpace(res.Text),
		ModelVersion:         res.ModelVersion,
		ProcessingTime:       time.Since(start).Seconds(),
	}
	if res.TokensUsed > 0 {
		tokens := res.TokensUsed
		desc.TokensUsed = &tokens
	}

	if err := s.descriptions.Create(ctx, desc); err != nil {
		return nil, fmt.Errorf("storing description: %w", err)
	}

	s.logger.Info("description generated",
		slog.String("id", desc.ID),
		slog.String("type", string(typ)),
		slog.Float64("processing_time", desc.ProcessingTime),
	)
	return desc, nil
}

// GetByID returns one stored generation result.
func (s *GenerationService) GetByID(ctx context.Context, id string) (*model.GeneratedDescription, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "description ID is required")
	}
	return s.descriptions.GetByID(ctx, id)
}

// buildPrompt composes the generation prompt: active template (or default)
// plus learning context. Context-assembly failures degrade to a plain prompt
// rather than failing the generation.
func (s *GenerationService) buildPrompt(ctx context.Context, typ model.DescriptionType, inputText string) string {
	learning := s.learningContext(ctx, typ)

	template, err := s.prompts.GetActive(ctx, typ)
	switch {
	case err == nil:
		return fmt.Sprintf("%s\n%s\nInput information: %s", template.Content, learning, inputText)
	case errors.Is(err, apperror.ErrNotFound):
		// No active template: the built-in prompt applies.
	default:
		s.logger.Warn("active prompt lookup failed, using default",
			slog.String("type", string(typ)),
			slog.String("error", err.Error()),
		)
	}

	if typ == model.TypeCompany {
		return fmt.Sprintf(generator.DefaultCompanyPrompt, learning, inputText)
	}
	return fmt.Sprintf(generator.DefaultGuitarPrompt, learning, inputText)
}

// learningContext folds recent unapplied corrections and public examples of
// the matching type into prompt text.
func (s *GenerationService) learningContext(ctx context.Context, typ model.DescriptionType) string {
	var b strings.Builder

	corrections, err := s.corrections.ListUnapplied(ctx, typ, contextCorrections)
	if err != nil {
		s.logger.Warn("loading corrections for context failed", slog.String("error", err.Error()))
	} else if len(corrections) > 0 {
		b.WriteString("\nPrevious corrections to consider:\n")
		for _, c := range corrections {
			fmt.Fprintf(&b, "- %s -> %s\n", c.Original, c.Corrected)
		}
	}

	examples, err := s.saved.List(ctx, repository.SavedListOptions{
		PublicOnly: true,
		Type:       typ,
		Limit:      contextExamples,
	})
	if err != nil {
		s.logger.Warn("loading examples for context failed", slog.String("error", err.Error()))
	} else if len(examples) > 0 {
		b.WriteString("\nExample descriptions:\n")
		for _, e := range examples {
			fmt.Fprintf(&b, "- %s\n", e.Content)
		}
	}

	return b.String()
}
