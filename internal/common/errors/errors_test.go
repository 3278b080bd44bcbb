package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_PassesThroughStandardError(t *testing.T) {
	orig := NewValidationError("Missing required fields")
	assert.Same(t, orig, Normalize(orig))
}

func TestNormalize_WrapsPlainError(t *testing.T) {
	stdErr := Normalize(errors.New("boom"))
	assert.Equal(t, ErrCodeInternal, stdErr.Code)
	assert.Equal(t, "boom", stdErr.Details)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code   ErrorCode
		status int
	}{
		{ErrCodeValidationFailed, http.StatusBadRequest},
		{ErrCodeParseFailed, http.StatusBadRequest},
		{ErrCodeRecordNotFound, http.StatusNotFound},
		{ErrCodeIllegalTransition, http.StatusConflict},
		{ErrCodeQueryFailed, http.StatusInternalServerError},
		{ErrCodeEmailSendFailed, http.StatusInternalServerError},
		{ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.code))
		})
	}
}

func TestNotFoundError_Message(t *testing.T) {
	err := NewNotFoundError("Job form field", 42)
	assert.Equal(t, ErrCodeRecordNotFound, err.Code)
	assert.Equal(t, "Job form field not found", err.Message)
	assert.Contains(t, err.Details, "42")
}

func TestIllegalTransitionError_Message(t *testing.T) {
	err := NewIllegalTransitionError("pending", "approved")
	assert.Equal(t, ErrCodeIllegalTransition, err.Code)
	assert.Contains(t, err.Details, "pending")
	assert.Contains(t, err.Details, "approved")
}
