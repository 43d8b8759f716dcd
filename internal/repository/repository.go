// Package repository declares the storage interfaces the service layer
// programs against. The sqlite subpackage is the only implementation; tests
// substitute in-memory mocks.
package repository

import (
	"context"
	"time"

	"descgen/internal/model"
)

// SavedListOptions filters saved-description queries.
type SavedListOptions struct {
	Limit      int
	PublicOnly bool
	Type       model.DescriptionType // empty means all types
}

// DescriptionRepository stores generation results. Rows are append-only.
type DescriptionRepository interface {
	Create(ctx context.Context, desc *model.GeneratedDescription) error
	GetByID(ctx context.Context, id string) (*model.GeneratedDescription, error)
	ListRecent(ctx context.Context, limit int) ([]model.GeneratedDescription, error)
	Count(ctx context.Context) (int, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

// SavedDescriptionRepository stores curated descriptions and manual examples
// (examples are rows with IsPublic set).
type SavedDescriptionRepository interface {
	Create(ctx context.Context, desc *model.SavedDescription) error
	GetByID(ctx context.Context, id string) (*model.SavedDescription, error)
	List(ctx context.Context, opts SavedListOptions) ([]model.SavedDescription, error)
	Update(ctx context.Context, desc *model.SavedDescription) error
	SetPublic(ctx context.Context, id string, isPublic bool) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// CorrectionRepository stores human corrections. Rows are append-only apart
// from the applied flag.
type CorrectionRepository interface {
	Create(ctx context.Context, c *model.Correction) error
	GetByID(ctx context.Context, id string) (*model.Correction, error)
	ListRecent(ctx context.Context, limit int) ([]model.Correction, error)
	ListUnapplied(ctx context.Context, typ model.DescriptionType, limit int) ([]model.Correction, error)
	MarkApplied(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

// PromptRepository stores prompt templates. Activate must be exclusive: after
// it returns, the given template is the only active one of its prompt type.
type PromptRepository interface {
	Create(ctx context.Context, p *model.PromptTemplate) error
	GetByID(ctx context.Context, id string) (*model.PromptTemplate, error)
	List(ctx context.Context) ([]model.PromptTemplate, error)
	Update(ctx context.Context, p *model.PromptTemplate) error
	Delete(ctx context.Context, id string) error
	GetActive(ctx context.Context, typ model.DescriptionType) (*model.PromptTemplate, error)
	Activate(ctx context.Context, id string) error
}
