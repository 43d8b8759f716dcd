// Package api is the HTTP+JSON client for the description service. It is the
// network leaf of the client side: one typed method per endpoint, no workflow
// state, no rendering.
//
// Every response follows the same envelope: a JSON object carrying a "success"
// flag and, on failure, an "error" string. The do helper folds the three failure
// modes into the apperror taxonomy:
//
//   - transport failure (unreachable host)        → apperror.ErrUnavailable
//   - non-2xx status or success:false body        → apperror.ErrRemote
//   - 2xx status with a body that is not JSON     → apperror.ErrBadResponse
//
// The backend's own error text is passed through verbatim; there are no
// retries and no backoff.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"descgen/internal/apperror"
)

const defaultTimeout = 120 * time.Second // generation calls can be slow

// Client talks to one description service instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a Client for the service at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, logger *slog.Logger) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: defaultTimeout}, logger)
}

// NewWithHTTPClient creates a Client with a caller-supplied http.Client.
// Used by tests and by callers that need custom transport settings.
func NewWithHTTPClient(baseURL string, hc *http.Client, logger *slog.Logger) *Client {
	for len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: hc,
		logger:     logger,
	}
}

// envelope is the part of every response body shared by all endpoints.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// do issues one request and decodes the response into out (when non-nil).
// reqBody is JSON-encoded when non-nil. out receives the full response body,
// so response structs embed their payload fields directly.
func (c *Client) do(ctx context.Context, method, path string, reqBody, out any) error {
	var body io.Reader
	if reqBody != nil {
		encoded, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperror.Unavailable(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperror.Unavailable(err)
	}

	c.logger.Debug("api call",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Error bodies usually carry the envelope; fall back to the HTTP
		// status line when they don't.
		var env envelope
		if json.Unmarshal(data, &env) == nil && env.Error != "" {
			return apperror.Remote(env.Error)
		}
		return apperror.Remote(resp.Status)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return apperror.BadResponse(err)
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "request failed"
		}
		return apperror.Remote(msg)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return apperror.BadResponse(err)
		}
	}
	return nil
}
