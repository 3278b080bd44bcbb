// internal/server/respond.go
package server

import (
	"net/http"

	apperrors "corpsite-backend/internal/common/errors"

	"github.com/gin-gonic/gin"
)

// respondError writes the mutation-route error envelope. Store failures keep
// the underlying error string in error_details, matching the original API.
func respondError(c *gin.Context, err error) {
	stdErr := apperrors.Normalize(err)
	status := apperrors.HTTPStatus(stdErr.Code)

	body := gin.H{"status": "error", "message": stdErr.Message}
	if status >= http.StatusInternalServerError && stdErr.Details != "" {
		body["error_details"] = stdErr.Details
	}
	c.JSON(status, body)
}

// respondListError writes the read-route error envelope, which the original
// API kept as a bare error field.
func respondListError(c *gin.Context, err error) {
	stdErr := apperrors.Normalize(err)
	c.JSON(apperrors.HTTPStatus(stdErr.Code), gin.H{"error": stdErr.Message})
}
