// internal/common/errors/http.go
package errors

import "net/http"

// httpStatusMapping maps internal error codes to HTTP status codes.
var httpStatusMapping = map[ErrorCode]int{
	ErrCodeValidationFailed:  http.StatusBadRequest,
	ErrCodeParseFailed:       http.StatusBadRequest,
	ErrCodeRecordNotFound:    http.StatusNotFound,
	ErrCodeIllegalTransition: http.StatusConflict,
	ErrCodeQueryFailed:       http.StatusInternalServerError,
	ErrCodeWriteFailed:       http.StatusInternalServerError,
	ErrCodeUploadFailed:      http.StatusInternalServerError,
	ErrCodeEmailSendFailed:   http.StatusInternalServerError,
	ErrCodeInternal:          http.StatusInternalServerError,
}

// HTTPStatus returns the HTTP status for an error code, 500 when unmapped.
func HTTPStatus(code ErrorCode) int {
	if status, ok := httpStatusMapping[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
