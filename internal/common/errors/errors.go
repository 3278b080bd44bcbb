// Package errors provides standardized error handling for the HTTP API.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrCodeParseFailed       ErrorCode = "PARSE_ERROR"
	ErrCodeRecordNotFound    ErrorCode = "RECORD_NOT_FOUND"
	ErrCodeIllegalTransition ErrorCode = "ILLEGAL_TRANSITION"

	ErrCodeQueryFailed  ErrorCode = "STORE_QUERY_FAILED"
	ErrCodeWriteFailed  ErrorCode = "STORE_WRITE_FAILED"
	ErrCodeUploadFailed ErrorCode = "UPLOAD_FAILED"

	ErrCodeEmailSendFailed ErrorCode = "EMAIL_SEND_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationError creates an error for missing or malformed required input.
func NewValidationError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewParseError creates an error for an unparseable request payload.
func NewParseError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeParseFailed,
		Message:   "Invalid request payload",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotFoundError creates an error for an update or delete matching zero rows.
func NewNotFoundError(resource string, id int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordNotFound,
		Message:   fmt.Sprintf("%s not found", resource),
		Details:   fmt.Sprintf("id: %d", id),
		Timestamp: time.Now().UTC(),
	}
}

// NewIllegalTransitionError is returned in strict pipeline mode only.
func NewIllegalTransitionError(current, target string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIllegalTransition,
		Message:   "Status transition not allowed",
		Details:   fmt.Sprintf("current: %s, target: %s", current, target),
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryError creates an error for a failed read from the relational store.
func NewQueryError(message string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryFailed,
		Message:   message,
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// NewWriteError creates an error for a failed write to the relational store.
func NewWriteError(message string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWriteFailed,
		Message:   message,
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// NewUploadError creates an error for a failed blob store write during intake.
func NewUploadError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUploadFailed,
		Message:   "File upload error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// NewEmailSendError creates an error for a failed outbound notification email.
func NewEmailSendError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmailSendFailed,
		Message:   "Failed to send email",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// Normalize ensures we always have a StandardError to hand to the HTTP layer.
func Normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}
