package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"empty url", ErrEmptyURL, "url_empty", http.StatusBadRequest},
		{"inaccessible", ErrURLMustBeAccessible, "url_must_be_accessible", http.StatusBadRequest},
		{"restricted", ErrURLRestricted, "url_restricted", http.StatusForbidden},
		{"not found", ErrURLNotFound, "url_not_found", http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", ErrURLNotFound), "url_not_found", http.StatusNotFound},
		{"store failure", fmt.Errorf("%w: connection reset", ErrStoreUnavailable), "unexpected_error", http.StatusInternalServerError},
		{"codespace", ErrCodespaceExhausted, "unexpected_error", http.StatusInternalServerError},
		{"unknown", errors.New("boom"), "unexpected_error", http.StatusInternalServerError},
		{"app error passthrough", AppError{Message: "bad", Code: "invalid_query", Status: http.StatusBadRequest}, "invalid_query", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromError(tt.err)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestFromError_DoesNotLeakDetails(t *testing.T) {
	got := FromError(fmt.Errorf("%w: dial tcp 10.0.0.5:5432: connection refused", ErrStoreUnavailable))
	assert.Equal(t, "Internal Server Error", got.Message)
	assert.NotContains(t, got.Error(), "10.0.0.5")
}

func TestIsUserError(t *testing.T) {
	assert.True(t, IsUserError(ErrURLRestricted))
	assert.True(t, IsUserError(fmt.Errorf("x: %w", ErrEmptyURL)))
	assert.False(t, IsUserError(ErrStoreUnavailable))
	assert.False(t, IsUserError(errors.New("other")))
}
