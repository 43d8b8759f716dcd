package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"descgen/internal/api"
	"descgen/internal/apperror"
	"descgen/internal/model"
)

// SaveOptions collects the save-form fields. Tags is the raw comma-separated
// string as typed; it is split before hitting the wire.
type SaveOptions struct {
	Type     model.DescriptionType
	Content  string
	Title    string
	Category string
	Tags     string
	Public   bool

	// Suggest asks the backend for category/tags hints before saving.
	// Suggestion failures are ignored — the save proceeds without them.
	Suggest bool
}

// ParseTags splits a comma-separated tag string into trimmed, non-empty tags.
func ParseTags(s string) []string {
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// Save stores content as a named, categorised library record and returns the
// new record's ID. Title and category are required; violations are reported
// before any network call.
func (w *Workflow) Save(ctx context.Context, opts SaveOptions) (string, error) {
	opts.Title = strings.TrimSpace(opts.Title)
	opts.Category = strings.TrimSpace(opts.Category)

	if strings.TrimSpace(opts.Content) == "" {
		return "", apperror.ValidationFailed("content", "content is required")
	}
	if opts.Title == "" {
		return "", apperror.ValidationFailed("title", "title is required")
	}
	if !opts.Type.Valid() {
		return "", apperror.ValidationFailed("type", fmt.Sprintf("unknown description type %q", opts.Type))
	}

	tags := ParseTags(opts.Tags)

	if opts.Suggest {
		// Best effort only. A failed suggestion call must never block the save.
		suggestion, err := w.backend.SuggestMetadata(ctx, opts.Content, opts.Type)
		if err != nil {
			w.logger.Debug("metadata suggestion failed", slog.String("error", err.Error()))
		} else {
			if opts.Category == "" && suggestion.Category != "" {
				opts.Category = suggestion.Category
			}
			if len(tags) == 0 {
				tags = suggestion.Tags
			}
		}
	}

	// Category may have been filled by the suggestion; it is still required.
	if opts.Category == "" {
		return "", apperror.ValidationFailed("category", "category is required")
	}

	if err := w.begin("save"); err != nil {
		return "", err
	}
	defer w.end("save")

	id, err := w.backend.SaveDescription(ctx, api.SaveRequest{
		Type:     opts.Type,
		Content:  opts.Content,
		Title:    opts.Title,
		Category: opts.Category,
		Tags:     tags,
		IsPublic: opts.Public,
	})
	if err != nil {
		return "", fmt.Errorf("saving description: %w", err)
	}

	w.logger.Info("description saved",
		slog.String("id", id),
		slog.String("title", opts.Title),
	)
	return id, nil
}

// SaveCurrent saves the current generation context's output. Type and content
// come from the context; the rest from opts.
func (w *Workflow) SaveCurrent(ctx context.Context, opts SaveOptions) (string, error) {
	current, ok := w.Current()
	if !ok {
		return "", apperror.ValidationFailed("content", "nothing to save: no description has been generated or viewed")
	}
	opts.Type = current.Type
	opts.Content = current.Output
	return w.Save(ctx, opts)
}
