package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"descgen/internal/generator"
	"descgen/internal/handler"
	"descgen/internal/repository/sqlite"
	"descgen/internal/service"
)

// stubGenerator returns a fixed result so handler tests run without a model
// backend.
type stubGenerator struct {
	capturedPrompt string
	returnErr      error
}

func (s *stubGenerator) Generate(_ context.Context, _, prompt string) (*generator.Result, error) {
	s.capturedPrompt = prompt
	if s.returnErr != nil {
		return nil, s.returnErr
	}
	return &generator.Result{Text: "a fine description", TokensUsed: 12, ModelVersion: "stub"}, nil
}

type fixture struct {
	db           *sqlite.DB
	gen          *stubGenerator
	descriptions *handler.DescriptionHandler
	saved        *handler.SavedHandler
	corrections  *handler.CorrectionHandler
	examples     *handler.ExampleHandler
	prompts      *handler.PromptHandler
	learning     *handler.LearningHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gen := &stubGenerator{}

	generation := service.NewGenerationService(db.Descriptions, db.Corrections, db.Saved, db.Prompts, gen, logger)
	library := service.NewLibraryService(db.Saved, logger)
	corrections := service.NewCorrectionService(db.Corrections, logger)
	prompts := service.NewPromptService(db.Prompts, logger)
	learning := service.NewLearningService(db.Descriptions, db.Saved, db.Corrections)

	return &fixture{
		db:           db,
		gen:          gen,
		descriptions: handler.NewDescriptionHandler(generation, logger),
		saved:        handler.NewSavedHandler(library, logger),
		corrections:  handler.NewCorrectionHandler(corrections, logger),
		examples:     handler.NewExampleHandler(library, logger),
		prompts:      handler.NewPromptHandler(prompts, logger),
		learning:     handler.NewLearningHandler(learning, logger),
	}
}

func doJSON(t *testing.T, h http.HandlerFunc, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h(rr, req)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&decoded), "every response must be JSON")
	return rr, decoded
}

func TestHandleGenerate(t *testing.T) {
	t.Run("success envelope", func(t *testing.T) {
		f := newFixture(t)

		rr, res := doJSON(t, f.descriptions.HandleGenerate, http.MethodPost,
			"/api/descriptions/generate", `{"type":"guitar","input_text":"Fender Jazzmaster"}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, true, res["success"])
		assert.Equal(t, "a fine description", res["description"])
		assert.NotEmpty(t, res["description_id"])
		assert.Equal(t, "guitar", res["type"])
		assert.Contains(t, f.gen.capturedPrompt, "Fender Jazzmaster")
	})

	t.Run("empty input", func(t *testing.T) {
		f := newFixture(t)

		rr, res := doJSON(t, f.descriptions.HandleGenerate, http.MethodPost,
			"/api/descriptions/generate", `{"type":"guitar","input_text":"  "}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, false, res["success"])
		assert.NotEmpty(t, res["error"])
	})

	t.Run("invalid JSON body", func(t *testing.T) {
		f := newFixture(t)

		rr, res := doJSON(t, f.descriptions.HandleGenerate, http.MethodPost,
			"/api/descriptions/generate", `{"type":`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, false, res["success"])
	})

	t.Run("stores the generation in history", func(t *testing.T) {
		f := newFixture(t)

		_, res := doJSON(t, f.descriptions.HandleGenerate, http.MethodPost,
			"/api/descriptions/generate", `{"type":"company","input_text":"Acme GmbH, founded 1999"}`)

		id := res["description_id"].(string)
		req := httptest.NewRequest(http.MethodGet, "/api/descriptions/"+id, nil)
		req.SetPathValue("id", id)
		rr := httptest.NewRecorder()
		f.descriptions.HandleGet(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got struct {
			Success     bool `json:"success"`
			Description struct {
				InputText string `json:"input_text"`
			} `json:"description"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.True(t, got.Success)
		assert.Equal(t, "Acme GmbH, founded 1999", got.Description.InputText)
	})
}

func TestSavedLifecycleOverHTTP(t *testing.T) {
	f := newFixture(t)

	// Save.
	rr, res := doJSON(t, f.saved.HandleSave, http.MethodPost, "/api/saved-descriptions/save",
		`{"type":"guitar","title":"Jazzmaster","content":"offset body","category":"electric","tags":["vintage"],"is_public":false}`)
	require.Equal(t, http.StatusOK, rr.Code)
	id := res["description_id"].(string)
	require.NotEmpty(t, id)

	// Toggle visibility.
	req := httptest.NewRequest(http.MethodPost, "/api/saved-descriptions/"+id+"/toggle-active", nil)
	req.SetPathValue("id", id)
	rr = httptest.NewRecorder()
	f.saved.HandleToggleActive(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	var toggled struct {
		Success  bool `json:"success"`
		IsPublic bool `json:"is_public"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&toggled))
	assert.True(t, toggled.IsPublic)

	// List: the record is there.
	req = httptest.NewRequest(http.MethodGet, "/api/saved-descriptions/list", nil)
	rr = httptest.NewRecorder()
	f.saved.HandleList(rr, req)
	var listed struct {
		Descriptions []struct {
			ID string `json:"id"`
		} `json:"descriptions"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&listed))
	require.Len(t, listed.Descriptions, 1)
	assert.Equal(t, id, listed.Descriptions[0].ID)

	// Delete, then a lookup is 404 with the failure envelope.
	req = httptest.NewRequest(http.MethodDelete, "/api/saved-descriptions/"+id, nil)
	req.SetPathValue("id", id)
	rr = httptest.NewRecorder()
	f.saved.HandleDelete(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/saved-descriptions/"+id, nil)
	req.SetPathValue("id", id)
	rr = httptest.NewRecorder()
	f.saved.HandleGet(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	var failure struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&failure))
	assert.False(t, failure.Success)
	assert.NotEmpty(t, failure.Error)
}

func TestExamplesAreAlwaysPublic(t *testing.T) {
	f := newFixture(t)

	_, res := doJSON(t, f.examples.HandleAdd, http.MethodPost, "/api/examples/add",
		`{"type":"guitar","title":"Great example","content":"exemplary text"}`)
	require.NotEmpty(t, res["example_id"])

	req := httptest.NewRequest(http.MethodGet, "/api/examples/public?type=guitar", nil)
	rr := httptest.NewRecorder()
	f.examples.HandlePublic(rr, req)

	var listed struct {
		Examples []struct {
			IsPublic bool `json:"is_public"`
		} `json:"examples"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&listed))
	require.Len(t, listed.Examples, 1)
	assert.True(t, listed.Examples[0].IsPublic)
}

func TestCorrectionSubmitAndApply(t *testing.T) {
	f := newFixture(t)

	rr, res := doJSON(t, f.corrections.HandleSubmit, http.MethodPost, "/api/corrections/submit",
		`{"original_text":"teh old","corrected_text":"the new","type":"guitar"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	id := res["correction_id"].(string)
	require.NotEmpty(t, id)

	req := httptest.NewRequest(http.MethodPost, "/api/corrections/"+id+"/apply", nil)
	req.SetPathValue("id", id)
	rr = httptest.NewRecorder()
	f.corrections.HandleApply(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	// Applying a missing correction is 404.
	req = httptest.NewRequest(http.MethodPost, "/api/corrections/nope/apply", nil)
	req.SetPathValue("id", "nope")
	rr = httptest.NewRecorder()
	f.corrections.HandleApply(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAddPromptDefaultsToActive(t *testing.T) {
	f := newFixture(t)

	// No is_active field in the body: the new template becomes the active
	// one for its type.
	rr, res := doJSON(t, f.prompts.HandleAdd, http.MethodPost, "/api/prompts/add",
		`{"prompt_type":"guitar","title":"Vintage tone","content":"Describe the guitar warmly."}`)
	require.Equal(t, http.StatusOK, rr.Code)
	id := res["prompt_id"].(string)
	require.NotEmpty(t, id)

	req := httptest.NewRequest(http.MethodGet, "/api/prompts/active/guitar", nil)
	req.SetPathValue("type", "guitar")
	rr = httptest.NewRecorder()
	f.prompts.HandleActive(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got struct {
		Success bool `json:"success"`
		Prompt  struct {
			ID       string `json:"id"`
			IsActive bool   `json:"is_active"`
		} `json:"prompt"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.True(t, got.Success)
	assert.Equal(t, id, got.Prompt.ID)
	assert.True(t, got.Prompt.IsActive)
}

func TestAddPromptExplicitlyInactive(t *testing.T) {
	f := newFixture(t)

	rr, _ := doJSON(t, f.prompts.HandleAdd, http.MethodPost, "/api/prompts/add",
		`{"prompt_type":"guitar","title":"Draft","content":"Not ready yet.","is_active":false}`)
	require.Equal(t, http.StatusOK, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/prompts/active/guitar", nil)
	req.SetPathValue("type", "guitar")
	rr2 := httptest.NewRecorder()
	f.prompts.HandleActive(rr2, req)

	assert.Equal(t, http.StatusNotFound, rr2.Code)
}

func TestActivePromptNotFound(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/prompts/active/guitar", nil)
	req.SetPathValue("type", "guitar")
	rr := httptest.NewRecorder()
	f.prompts.HandleActive(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDashboardAndStats(t *testing.T) {
	f := newFixture(t)

	doJSON(t, f.descriptions.HandleGenerate, http.MethodPost,
		"/api/descriptions/generate", `{"type":"guitar","input_text":"something"}`)
	doJSON(t, f.corrections.HandleSubmit, http.MethodPost, "/api/corrections/submit",
		`{"original_text":"a","corrected_text":"b","type":"guitar"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/learning-data/dashboard", nil)
	rr := httptest.NewRecorder()
	f.learning.HandleDashboard(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	var dash struct {
		Success               bool             `json:"success"`
		Corrections           []map[string]any `json:"corrections"`
		GeneratedDescriptions []map[string]any `json:"returned_descriptions"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&dash))
	assert.True(t, dash.Success)
	assert.Len(t, dash.Corrections, 1)
	assert.Len(t, dash.GeneratedDescriptions, 1)

	req = httptest.NewRequest(http.MethodGet, "/api/learning-data/stats", nil)
	rr = httptest.NewRecorder()
	f.learning.HandleStats(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	var stats struct {
		Stats struct {
			TotalGenerated   int `json:"total_generated_descriptions"`
			TotalCorrections int `json:"total_corrections"`
		} `json:"stats"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&stats))
	assert.Equal(t, 1, stats.Stats.TotalGenerated)
	assert.Equal(t, 1, stats.Stats.TotalCorrections)
}
