package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"descgen/internal/apperror"
	"descgen/internal/generator"
	"descgen/internal/model"
	"descgen/internal/repository"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- mocks -------------------------------------------------------------

type mockDescriptionRepo struct {
	createFn     func(ctx context.Context, d *model.GeneratedDescription) error
	getFn        func(ctx context.Context, id string) (*model.GeneratedDescription, error)
	listRecentFn func(ctx context.Context, limit int) ([]model.GeneratedDescription, error)
	countFn      func(ctx context.Context) (int, error)
	countSinceFn func(ctx context.Context, since time.Time) (int, error)

	created []*model.GeneratedDescription
}

func (m *mockDescriptionRepo) Create(ctx context.Context, d *model.GeneratedDescription) error {
	m.created = append(m.created, d)
	if m.createFn != nil {
		return m.createFn(ctx, d)
	}
	d.ID = "desc-1"
	return nil
}

func (m *mockDescriptionRepo) GetByID(ctx context.Context, id string) (*model.GeneratedDescription, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, apperror.NotFound("description", id)
}

func (m *mockDescriptionRepo) ListRecent(ctx context.Context, limit int) ([]model.GeneratedDescription, error) {
	if m.listRecentFn != nil {
		return m.listRecentFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockDescriptionRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockDescriptionRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	if m.countSinceFn != nil {
		return m.countSinceFn(ctx, since)
	}
	return 0, nil
}

type mockSavedRepo struct {
	createFn    func(ctx context.Context, d *model.SavedDescription) error
	getFn       func(ctx context.Context, id string) (*model.SavedDescription, error)
	listFn      func(ctx context.Context, opts repository.SavedListOptions) ([]model.SavedDescription, error)
	updateFn    func(ctx context.Context, d *model.SavedDescription) error
	setPublicFn func(ctx context.Context, id string, isPublic bool) error
	deleteFn    func(ctx context.Context, id string) error
	countFn     func(ctx context.Context) (int, error)

	created []*model.SavedDescription
}

func (m *mockSavedRepo) Create(ctx context.Context, d *model.SavedDescription) error {
	m.created = append(m.created, d)
	if m.createFn != nil {
		return m.createFn(ctx, d)
	}
	d.ID = "saved-1"
	return nil
}

func (m *mockSavedRepo) GetByID(ctx context.Context, id string) (*model.SavedDescription, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, apperror.NotFound("saved description", id)
}

func (m *mockSavedRepo) List(ctx context.Context, opts repository.SavedListOptions) ([]model.SavedDescription, error) {
	if m.listFn != nil {
		return m.listFn(ctx, opts)
	}
	return nil, nil
}

func (m *mockSavedRepo) Update(ctx context.Context, d *model.SavedDescription) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, d)
	}
	return nil
}

func (m *mockSavedRepo) SetPublic(ctx context.Context, id string, isPublic bool) error {
	if m.setPublicFn != nil {
		return m.setPublicFn(ctx, id, isPublic)
	}
	return nil
}

func (m *mockSavedRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockSavedRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockCorrectionRepo struct {
	createFn        func(ctx context.Context, c *model.Correction) error
	getFn           func(ctx context.Context, id string) (*model.Correction, error)
	listRecentFn    func(ctx context.Context, limit int) ([]model.Correction, error)
	listUnappliedFn func(ctx context.Context, typ model.DescriptionType, limit int) ([]model.Correction, error)
	markAppliedFn   func(ctx context.Context, id string) error
	countFn         func(ctx context.Context) (int, error)
	countSinceFn    func(ctx context.Context, since time.Time) (int, error)

	created []*model.Correction
}

func (m *mockCorrectionRepo) Create(ctx context.Context, c *model.Correction) error {
	m.created = append(m.created, c)
	if m.createFn != nil {
		return m.createFn(ctx, c)
	}
	c.ID = "corr-1"
	return nil
}

func (m *mockCorrectionRepo) GetByID(ctx context.Context, id string) (*model.Correction, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, apperror.NotFound("correction", id)
}

func (m *mockCorrectionRepo) ListRecent(ctx context.Context, limit int) ([]model.Correction, error) {
	if m.listRecentFn != nil {
		return m.listRecentFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockCorrectionRepo) ListUnapplied(ctx context.Context, typ model.DescriptionType, limit int) ([]model.Correction, error) {
	if m.listUnappliedFn != nil {
		return m.listUnappliedFn(ctx, typ, limit)
	}
	return nil, nil
}

func (m *mockCorrectionRepo) MarkApplied(ctx context.Context, id string) error {
	if m.markAppliedFn != nil {
		return m.markAppliedFn(ctx, id)
	}
	return nil
}

func (m *mockCorrectionRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockCorrectionRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	if m.countSinceFn != nil {
		return m.countSinceFn(ctx, since)
	}
	return 0, nil
}

type mockPromptRepo struct {
	createFn    func(ctx context.Context, p *model.PromptTemplate) error
	getFn       func(ctx context.Context, id string) (*model.PromptTemplate, error)
	listFn      func(ctx context.Context) ([]model.PromptTemplate, error)
	updateFn    func(ctx context.Context, p *model.PromptTemplate) error
	deleteFn    func(ctx context.Context, id string) error
	getActiveFn func(ctx context.Context, typ model.DescriptionType) (*model.PromptTemplate, error)
	activateFn  func(ctx context.Context, id string) error
}

func (m *mockPromptRepo) Create(ctx context.Context, p *model.PromptTemplate) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	p.ID = "prompt-1"
	return nil
}

func (m *mockPromptRepo) GetByID(ctx context.Context, id string) (*model.PromptTemplate, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, apperror.NotFound("prompt", id)
}

func (m *mockPromptRepo) List(ctx context.Context) ([]model.PromptTemplate, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockPromptRepo) Update(ctx context.Context, p *model.PromptTemplate) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, p)
	}
	return nil
}

func (m *mockPromptRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockPromptRepo) GetActive(ctx context.Context, typ model.DescriptionType) (*model.PromptTemplate, error) {
	if m.getActiveFn != nil {
		return m.getActiveFn(ctx, typ)
	}
	return nil, apperror.NotFound("active prompt", string(typ))
}

func (m *mockPromptRepo) Activate(ctx context.Context, id string) error {
	if m.activateFn != nil {
		return m.activateFn(ctx, id)
	}
	return nil
}

type mockGenerator struct {
	generateFn func(ctx context.Context, system, prompt string) (*generator.Result, error)
	prompts    []string
}

func (m *mockGenerator) Generate(ctx context.Context, system, prompt string) (*generator.Result, error) {
	m.prompts = append(m.prompts, prompt)
	if m.generateFn != nil {
		return m.generateFn(ctx, system, prompt)
	}
	return &generator.Result{Text: "generated text", TokensUsed: 42, ModelVersion: "test"}, nil
}

func newGenerationService(
	descs *mockDescriptionRepo,
	corrs *mockCorrectionRepo,
	saved *mockSavedRepo,
	prompts *mockPromptRepo,
	gen *mockGenerator,
) *GenerationService {
	return NewGenerationService(descs, corrs, saved, prompts, gen, discardLogger())
}

// --- generation --------------------------------------------------------

func TestGenerateRejectsEmptyInput(t *testing.T) {
	svc := newGenerationService(&mockDescriptionRepo{}, &mockCorrectionRepo{}, &mockSavedRepo{}, &mockPromptRepo{}, &mockGenerator{})

	_, err := svc.Generate(context.Background(), model.TypeGuitar, "   ")

	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestGenerateRejectsUnknownType(t *testing.T) {
	gen := &mockGenerator{}
	svc := newGenerationService(&mockDescriptionRepo{}, &mockCorrectionRepo{}, &mockSavedRepo{}, &mockPromptRepo{}, gen)

	_, err := svc.Generate(context.Background(), "violin", "a violin")

	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Empty(t, gen.prompts, "backend must not be called for invalid input")
}

func TestGeneratePersistsResult(t *testing.T) {
	descs := &mockDescriptionRepo{}
	svc := newGenerationService(descs, &mockCorrectionRepo{}, &mockSavedRepo{}, &mockPromptRepo{}, &mockGenerator{})

	desc, err := svc.Generate(context.Background(), model.TypeGuitar, "Fender Stratocaster, 1997")

	require.NoError(t, err)
	require.Len(t, descs.created, 1)
	assert.Equal(t, "generated text", desc.GeneratedDescription)
	assert.Equal(t, model.TypeGuitar, desc.Type)
	require.NotNil(t, desc.TokensUsed)
	assert.Equal(t, 42, *desc.TokensUsed)
	assert.GreaterOrEqual(t, desc.ProcessingTime, 0.0)
}

func TestGenerateFoldsLearningContextIntoPrompt(t *testing.T) {
	corrs := &mockCorrectionRepo{
		listUnappliedFn: func(_ context.Context, typ model.DescriptionType, limit int) ([]model.Correction, error) {
			assert.Equal(t, model.TypeGuitar, typ)
			assert.Equal(t, contextCorrections, limit)
			return []model.Correction{{Original: "bad phrasing", Corrected: "good phrasing"}}, nil
		},
	}
	saved := &mockSavedRepo{
		listFn: func(_ context.Context, opts repository.SavedListOptions) ([]model.SavedDescription, error) {
			assert.True(t, opts.PublicOnly)
			assert.Equal(t, contextExamples, opts.Limit)
			return []model.SavedDescription{{Content: "a much admired description"}}, nil
		},
	}
	gen := &mockGenerator{}
	svc := newGenerationService(&mockDescriptionRepo{}, corrs, saved, &mockPromptRepo{}, gen)

	_, err := svc.Generate(context.Background(), model.TypeGuitar, "Gibson Les Paul")

	require.NoError(t, err)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "bad phrasing -> good phrasing")
	assert.Contains(t, gen.prompts[0], "a much admired description")
	assert.Contains(t, gen.prompts[0], "Gibson Les Paul")
}

func TestGenerateUsesActiveTemplateWhenPresent(t *testing.T) {
	prompts := &mockPromptRepo{
		getActiveFn: func(context.Context, model.DescriptionType) (*model.PromptTemplate, error) {
			return &model.PromptTemplate{Content: "CUSTOM TEMPLATE TEXT"}, nil
		},
	}
	gen := &mockGenerator{}
	svc := newGenerationService(&mockDescriptionRepo{}, &mockCorrectionRepo{}, &mockSavedRepo{}, prompts, gen)

	_, err := svc.Generate(context.Background(), model.TypeCompany, "Acme GmbH")

	require.NoError(t, err)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "CUSTOM TEMPLATE TEXT")
	assert.Contains(t, gen.prompts[0], "Acme GmbH")
}

func TestGenerateContextFailureDegradesGracefully(t *testing.T) {
	corrs := &mockCorrectionRepo{
		listUnappliedFn: func(context.Context, model.DescriptionType, int) ([]model.Correction, error) {
			return nil, errors.New("db gone")
		},
	}
	svc := newGenerationService(&mockDescriptionRepo{}, corrs, &mockSavedRepo{}, &mockPromptRepo{}, &mockGenerator{})

	desc, err := svc.Generate(context.Background(), model.TypeGuitar, "Ibanez RG")

	require.NoError(t, err)
	assert.Equal(t, "generated text", desc.GeneratedDescription)
}

func TestGenerateBackendFailurePropagates(t *testing.T) {
	gen := &mockGenerator{
		generateFn: func(context.Context, string, string) (*generator.Result, error) {
			return nil, errors.New("model not loaded")
		},
	}
	descs := &mockDescriptionRepo{}
	svc := newGenerationService(descs, &mockCorrectionRepo{}, &mockSavedRepo{}, &mockPromptRepo{}, gen)

	_, err := svc.Generate(context.Background(), model.TypeGuitar, "anything")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not loaded")
	assert.Empty(t, descs.created, "failed generations must not be stored")
}

// --- library -----------------------------------------------------------

func TestSaveValidatesRequiredFields(t *testing.T) {
	svc := NewLibraryService(&mockSavedRepo{}, discardLogger())

	cases := []struct {
		name string
		in   SaveInput
	}{
		{"missing content", SaveInput{Type: model.TypeGuitar, Title: "t"}},
		{"missing title", SaveInput{Type: model.TypeGuitar, Content: "c"}},
		{"bad type", SaveInput{Type: "violin", Title: "t", Content: "c"}},
		{"overlong title", SaveInput{Type: model.TypeGuitar, Title: strings.Repeat("x", MaxTitleLength+1), Content: "c"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Save(context.Background(), tc.in)
			assert.ErrorIs(t, err, apperror.ErrValidation)
		})
	}
}

func TestSaveCleansTags(t *testing.T) {
	repo := &mockSavedRepo{}
	svc := NewLibraryService(repo, discardLogger())

	desc, err := svc.Save(context.Background(), SaveInput{
		Type:    model.TypeGuitar,
		Title:   "Strat",
		Content: "a strat",
		Tags:    []string{" vintage ", "", "vintage", "sunburst"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"vintage", "sunburst"}, desc.Tags)
}

func TestAddExampleForcesPublic(t *testing.T) {
	repo := &mockSavedRepo{}
	svc := NewLibraryService(repo, discardLogger())

	desc, err := svc.AddExample(context.Background(), SaveInput{
		Type:     model.TypeCompany,
		Title:    "Good example",
		Content:  "example content",
		IsPublic: false,
	})

	require.NoError(t, err)
	assert.True(t, desc.IsPublic)
}

func TestToggleVisibilityFlipsCurrentValue(t *testing.T) {
	var gotPublic bool
	repo := &mockSavedRepo{
		getFn: func(context.Context, string) (*model.SavedDescription, error) {
			return &model.SavedDescription{ID: "saved-1", IsPublic: true}, nil
		},
		setPublicFn: func(_ context.Context, _ string, isPublic bool) error {
			gotPublic = isPublic
			return nil
		},
	}
	svc := NewLibraryService(repo, discardLogger())

	next, err := svc.ToggleVisibility(context.Background(), "saved-1")

	require.NoError(t, err)
	assert.False(t, next)
	assert.False(t, gotPublic)
}

func TestUpdateRejectsEmptyTitle(t *testing.T) {
	repo := &mockSavedRepo{
		getFn: func(context.Context, string) (*model.SavedDescription, error) {
			return &model.SavedDescription{ID: "saved-1", Title: "old"}, nil
		},
	}
	svc := NewLibraryService(repo, discardLogger())

	empty := "  "
	_, err := svc.Update(context.Background(), "saved-1", UpdateInput{Title: &empty})

	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestSuggestMetadataPrefersFrequentCategoryAndEchoedTags(t *testing.T) {
	repo := &mockSavedRepo{
		listFn: func(context.Context, repository.SavedListOptions) ([]model.SavedDescription, error) {
			return []model.SavedDescription{
				{Category: "electric", Tags: []string{"vintage", "humbucker"}},
				{Category: "electric", Tags: []string{"vintage"}},
				{Category: "acoustic", Tags: []string{"spruce"}},
			}, nil
		},
	}
	svc := NewLibraryService(repo, discardLogger())

	category, tags, err := svc.SuggestMetadata(context.Background(), model.TypeGuitar,
		"A lovely spruce top acoustic.")

	require.NoError(t, err)
	assert.Equal(t, "electric", category)
	// "spruce" appears in the content, so it outranks the more frequent tags.
	require.NotEmpty(t, tags)
	assert.Equal(t, "spruce", tags[0])
}

func TestSuggestMetadataEmptyLibrary(t *testing.T) {
	svc := NewLibraryService(&mockSavedRepo{}, discardLogger())

	category, tags, err := svc.SuggestMetadata(context.Background(), model.TypeGuitar, "anything")

	require.NoError(t, err)
	assert.Empty(t, category)
	assert.Empty(t, tags)
}

// --- corrections -------------------------------------------------------

func TestSubmitCorrectionValidation(t *testing.T) {
	svc := NewCorrectionService(&mockCorrectionRepo{}, discardLogger())

	cases := []struct {
		name string
		in   CorrectionInput
	}{
		{"missing corrected", CorrectionInput{Original: "a", Type: model.TypeGuitar}},
		{"missing original", CorrectionInput{Corrected: "b", Type: model.TypeGuitar}},
		{"identical texts", CorrectionInput{Original: "same", Corrected: " same ", Type: model.TypeGuitar}},
		{"bad type", CorrectionInput{Original: "a", Corrected: "b", Type: "violin"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tc.in)
			assert.ErrorIs(t, err, apperror.ErrValidation)
		})
	}
}

func TestSubmitCorrectionStoresTrimmedFields(t *testing.T) {
	repo := &mockCorrectionRepo{}
	svc := NewCorrectionService(repo, discardLogger())

	c, err := svc.Submit(context.Background(), CorrectionInput{
		Original:      "  the old text ",
		Corrected:     " the new text  ",
		Type:          model.TypeCompany,
		DescriptionID: " desc-7 ",
	})

	require.NoError(t, err)
	assert.Equal(t, "the old text", c.Original)
	assert.Equal(t, "the new text", c.Corrected)
	assert.Equal(t, "desc-7", c.DescriptionID)
}

func TestApplyCorrectionRequiresID(t *testing.T) {
	svc := NewCorrectionService(&mockCorrectionRepo{}, discardLogger())

	err := svc.Apply(context.Background(), "  ")

	assert.ErrorIs(t, err, apperror.ErrValidation)
}

// --- prompts -----------------------------------------------------------

func TestAddPromptValidation(t *testing.T) {
	svc := NewPromptService(&mockPromptRepo{}, discardLogger())

	_, err := svc.Add(context.Background(), PromptInput{PromptType: model.TypeGuitar, Title: "t"})

	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestUpdatePromptBumpsVersionOnContentChange(t *testing.T) {
	repo := &mockPromptRepo{
		getFn: func(context.Context, string) (*model.PromptTemplate, error) {
			return &model.PromptTemplate{ID: "prompt-1", Title: "t", Content: "old", Version: 3}, nil
		},
	}
	svc := NewPromptService(repo, discardLogger())

	newContent := "new"
	p, err := svc.Update(context.Background(), "prompt-1", PromptUpdate{Content: &newContent})

	require.NoError(t, err)
	assert.Equal(t, 4, p.Version)
}

func TestUpdatePromptSameContentKeepsVersion(t *testing.T) {
	repo := &mockPromptRepo{
		getFn: func(context.Context, string) (*model.PromptTemplate, error) {
			return &model.PromptTemplate{ID: "prompt-1", Title: "t", Content: "same", Version: 3}, nil
		},
	}
	svc := NewPromptService(repo, discardLogger())

	content := "same"
	p, err := svc.Update(context.Background(), "prompt-1", PromptUpdate{Content: &content})

	require.NoError(t, err)
	assert.Equal(t, 3, p.Version)
}

// --- learning data -----------------------------------------------------

func TestDashboardAggregatesAllStores(t *testing.T) {
	descs := &mockDescriptionRepo{
		listRecentFn: func(_ context.Context, limit int) ([]model.GeneratedDescription, error) {
			assert.Equal(t, dashboardLimit, limit)
			return []model.GeneratedDescription{{ID: "d1"}}, nil
		},
	}
	saved := &mockSavedRepo{
		listFn: func(_ context.Context, opts repository.SavedListOptions) ([]model.SavedDescription, error) {
			assert.Equal(t, dashboardLimit, opts.Limit)
			return []model.SavedDescription{{ID: "s1"}, {ID: "s2"}}, nil
		},
	}
	corrs := &mockCorrectionRepo{
		listRecentFn: func(context.Context, int) ([]model.Correction, error) {
			return []model.Correction{{ID: "c1"}}, nil
		},
	}
	svc := NewLearningService(descs, saved, corrs)

	dash, err := svc.Dashboard(context.Background())

	require.NoError(t, err)
	assert.Len(t, dash.Corrections, 1)
	assert.Len(t, dash.SavedDescriptions, 2)
	assert.Len(t, dash.GeneratedDescriptions, 1)
}

func TestStatsCombinesTotalsAndRecent(t *testing.T) {
	descs := &mockDescriptionRepo{
		countFn:      func(context.Context) (int, error) { return 30, nil },
		countSinceFn: func(context.Context, time.Time) (int, error) { return 4, nil },
	}
	saved := &mockSavedRepo{
		countFn: func(context.Context) (int, error) { return 12, nil },
	}
	corrs := &mockCorrectionRepo{
		countFn:      func(context.Context) (int, error) { return 7, nil },
		countSinceFn: func(context.Context, time.Time) (int, error) { return 2, nil },
	}
	svc := NewLearningService(descs, saved, corrs)

	stats, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, &model.Stats{
		TotalCorrections:  7,
		TotalSaved:        12,
		TotalGenerated:    30,
		RecentCorrections: 2,
		RecentGenerated:   4,
	}, stats)
}
