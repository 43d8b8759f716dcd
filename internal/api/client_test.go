package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"descgen/internal/apperror"
	"descgen/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestGenerate(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/descriptions/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"success": true,
			"description": "A 1959 Les Paul...",
			"type": "guitar",
			"description_id": "d1",
			"processing_time": 1.5
		}`)
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger())
	res, err := c.Generate(context.Background(), model.TypeGuitar, "Les Paul 1959")
	require.NoError(t, err)

	assert.Equal(t, "Les Paul 1959", captured["input_text"])
	assert.Equal(t, "guitar", captured["type"])
	assert.Equal(t, "d1", res.DescriptionID)
	assert.Equal(t, "A 1959 Les Paul...", res.Description)
	assert.Equal(t, 1.5, res.ProcessingTime)
}

func TestApplicationErrorIsReportedVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"success": false, "error": "quota exceeded"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger())
	_, err := c.Generate(context.Background(), model.TypeGuitar, "anything")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrRemote))
	assert.Equal(t, "quota exceeded", err.Error())
}

func TestSuccessFalseOn2xxIsRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success": false, "error": "no active prompt"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger())
	_, err := c.GetActivePrompt(context.Background(), model.TypeGuitar)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrRemote))
	assert.Equal(t, "no active prompt", err.Error())
}

func TestNon2xxWithoutEnvelopeUsesStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger())
	_, err := c.Dashboard(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrRemote))
	assert.Contains(t, err.Error(), "502")
}

func TestMalformedBodyIsBadResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, "<html>gateway page</html>")
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger())
	_, err := c.Dashboard(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrBadResponse))
	assert.False(t, errors.Is(err, apperror.ErrRemote), "parse failures are not remote errors")
}

func TestUnreachableBackendIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed before use

	c := New(srv.URL, testLogger())
	_, err := c.ListCorrections(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrUnavailable))
}

func TestToggleVisibilityReturnsNewValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/saved-descriptions/s7/toggle-active", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success": true, "is_public": true}`)
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger())
	isPublic, err := c.ToggleVisibility(context.Background(), "s7")
	require.NoError(t, err)
	assert.True(t, isPublic)
}

func TestCorrectionRequestOmitsEmptyDescriptionID(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success": true, "correction_id": "c1"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger())
	_, err := c.SubmitCorrection(context.Background(), CorrectionRequest{
		OriginalText:  "old",
		CorrectedText: "new",
		Type:          model.TypeCompany,
	})
	require.NoError(t, err)

	_, present := captured["description_id"]
	assert.False(t, present, "empty description_id must be absent from the wire")
}

func TestSaveDescriptionPayload(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success": true, "description_id": "s1"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger())
	id, err := c.SaveDescription(context.Background(), SaveRequest{
		Type:     model.TypeGuitar,
		Content:  "generated text",
		Title:    "My Title",
		Category: "Vintage",
		Tags:     []string{},
		IsPublic: false,
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", id)

	assert.Equal(t, "guitar", captured["type"])
	assert.Equal(t, "generated text", captured["content"])
	assert.Equal(t, "My Title", captured["title"])
	assert.Equal(t, "Vintage", captured["category"])
	assert.Equal(t, false, captured["is_public"])
}

func TestTrailingSlashInBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/prompts/list", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success": true, "prompts": []}`)
	}))
	defer srv.Close()

	c := New(srv.URL+"/", testLogger())
	prompts, err := c.ListPrompts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, prompts)
}
