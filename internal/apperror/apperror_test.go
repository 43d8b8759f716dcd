package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelsAreDistinguishable(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", NotFound("prompt", "abc"), ErrNotFound},
		{"validation", ValidationFailed("title", "title is required"), ErrValidation},
		{"conflict", Conflict("prompt", "abc"), ErrConflict},
		{"busy", Busy("generate"), ErrBusy},
		{"cancelled", Cancelled("delete"), ErrCancelled},
		{"remote", Remote("quota exceeded"), ErrRemote},
		{"unavailable", Unavailable(errors.New("connection refused")), ErrUnavailable},
		{"bad response", BadResponse(errors.New("unexpected end of JSON input")), ErrBadResponse},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, errors.Is(tc.err, tc.sentinel))

			// Each error matches its own sentinel and no other.
			for _, other := range cases {
				if other.sentinel != tc.sentinel {
					assert.False(t, errors.Is(tc.err, other.sentinel),
						"%s should not match %v", tc.name, other.sentinel)
				}
			}
		})
	}
}

func TestWrappingPreservesKind(t *testing.T) {
	inner := Remote("quota exceeded")
	wrapped := fmt.Errorf("generating description: %w", inner)

	assert.True(t, errors.Is(wrapped, ErrRemote))

	var appErr *AppError
	assert.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, "quota exceeded", appErr.Message)
}

func TestValidationFailedCarriesField(t *testing.T) {
	err := ValidationFailed("category", "category is required")

	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "category", appErr.Field)
	assert.Equal(t, "category is required", err.Error())
}
