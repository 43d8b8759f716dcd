// Package workflow orchestrates the generate → display → save/correct cycle on
// top of the api client. It owns the only piece of client-side state: the
// "current generation context" — the type, input, output and ID of the most
// recent generation — which later save and correct actions reference without
// re-fetching.
//
// Two deliberate decisions, both visible in the behaviour:
//
//   - Duplicate submissions are rejected while one is in flight (apperror.ErrBusy)
//     instead of letting the last response silently overwrite the first.
//   - The context value is immutable: every triggering event (generate, view,
//     correction) replaces it wholesale under the mutex, so a reader can never
//     observe a half-updated triple.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"descgen/internal/api"
	"descgen/internal/apperror"
	"descgen/internal/model"
)

// API is the slice of the backend client the workflow needs. The concrete
// *api.Client satisfies it; tests substitute a mock.
type API interface {
	Generate(ctx context.Context, typ model.DescriptionType, inputText string) (*api.GenerateResult, error)
	GetDescription(ctx context.Context, id string) (*model.GeneratedDescription, error)
	SuggestMetadata(ctx context.Context, content string, typ model.DescriptionType) (*api.MetadataSuggestion, error)
	SaveDescription(ctx context.Context, req api.SaveRequest) (string, error)
	SubmitCorrection(ctx context.Context, req api.CorrectionRequest) (string, error)
	ToggleVisibility(ctx context.Context, id string) (bool, error)
	DeleteSavedDescription(ctx context.Context, id string) error
	Dashboard(ctx context.Context) (*model.Dashboard, error)
}

var _ API = (*api.Client)(nil)

// Confirmer gates destructive operations. Delete never issues a request
// unless Confirm answers true.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a plain function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

// Context is the current generation context. It is a value, replaced as a
// whole on every generate/view/correction event and never mutated in place.
type Context struct {
	Type          model.DescriptionType
	Input         string
	Output        string
	DescriptionID string
}

// Workflow coordinates user actions against the backend.
type Workflow struct {
	backend API
	confirm Confirmer
	logger  *slog.Logger

	mu       sync.Mutex
	current  *Context
	inFlight map[string]bool
}

// New creates a Workflow. confirm is consulted before destructive calls.
func New(backend API, confirm Confirmer, logger *slog.Logger) *Workflow {
	return &Workflow{
		backend:  backend,
		confirm:  confirm,
		logger:   logger,
		inFlight: make(map[string]bool),
	}
}

// Current returns a copy of the generation context, if any exists yet.
func (w *Workflow) Current() (Context, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current == nil {
		return Context{}, false
	}
	return *w.current, true
}

func (w *Workflow) setCurrent(c Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.current = &c
}

// begin marks an operation class as in flight, rejecting duplicates.
func (w *Workflow) begin(op string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inFlight[op] {
		return apperror.Busy(op)
	}
	w.inFlight[op] = true
	return nil
}

func (w *Workflow) end(op string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inFlight, op)
}

// Generate produces a new description and makes it the current context.
// Empty input fails validation before any network call.
func (w *Workflow) Generate(ctx context.Context, typ model.DescriptionType, inputText string) (Context, error) {
	inputText = strings.TrimSpace(inputText)
	if inputText == "" {
		return Context{}, apperror.ValidationFailed("input_text", "input text is required")
	}
	if !typ.Valid() {
		return Context{}, apperror.ValidationFailed("type", fmt.Sprintf("unknown description type %q", typ))
	}

	if err := w.begin("generate"); err != nil {
		return Context{}, err
	}
	defer w.end("generate")

	res, err := w.backend.Generate(ctx, typ, inputText)
	if err != nil {
		return Context{}, fmt.Errorf("generating description: %w", err)
	}

	current := Context{
		Type:          typ,
		Input:         inputText,
		Output:        res.Description,
		DescriptionID: res.DescriptionID,
	}
	w.setCurrent(current)

	w.logger.Info("description generated",
		slog.String("type", string(typ)),
		slog.String("id", res.DescriptionID),
	)
	return current, nil
}

// View fetches a previously generated description by ID and makes it the
// current context, so save/correct can target a history item.
func (w *Workflow) View(ctx context.Context, id string) (*model.GeneratedDescription, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "description ID is required")
	}

	desc, err := w.backend.GetDescription(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching description: %w", err)
	}

	w.setCurrent(Context{
		Type:          desc.Type,
		Input:         desc.InputText,
		Output:        desc.GeneratedDescription,
		DescriptionID: desc.ID,
	})
	return desc, nil
}

// ToggleVisibility flips a saved description's public flag and returns the
// new value.
func (w *Workflow) ToggleVisibility(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, apperror.ValidationFailed("id", "description ID is required")
	}
	return w.backend.ToggleVisibility(ctx, id)
}

// Delete removes a saved description after an explicit confirmation. When the
// confirmation is declined no request is issued and ErrCancelled is returned.
func (w *Workflow) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "description ID is required")
	}

	if !w.confirm.Confirm(fmt.Sprintf("delete saved description %s? This cannot be undone.", id)) {
		return apperror.Cancelled("delete")
	}

	if err := w.begin("delete"); err != nil {
		return err
	}
	defer w.end("delete")

	if err := w.backend.DeleteSavedDescription(ctx, id); err != nil {
		return fmt.Errorf("deleting saved description: %w", err)
	}
	w.logger.Info("saved description deleted", slog.String("id", id))
	return nil
}

// RefreshDashboard re-fetches the aggregate learning-data view.
func (w *Workflow) RefreshDashboard(ctx context.Context) (*model.Dashboard, error) {
	return w.backend.Dashboard(ctx)
}
