// internal/server/formfields_handler.go
package server

import (
	"net/http"
	"strconv"

	apperrors "corpsite-backend/internal/common/errors"
	"corpsite-backend/internal/common/logger"
	"corpsite-backend/internal/formfields"

	"github.com/gin-gonic/gin"
)

// FormFieldHandler exposes the form schema registry over HTTP.
type FormFieldHandler struct {
	svc    *formfields.Service
	logger logger.Logger
}

func NewFormFieldHandler(svc *formfields.Service, log logger.Logger) *FormFieldHandler {
	return &FormFieldHandler{svc: svc, logger: log}
}

// List handles GET /job-form-fields/:job_id.
func (h *FormFieldHandler) List(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("job_id"), 10, 64)
	if err != nil {
		respondListError(c, apperrors.NewValidationError("Invalid job id"))
		return
	}

	fields, err := h.svc.List(c.Request.Context(), jobID)
	if err != nil {
		respondListError(c, err)
		return
	}
	c.JSON(http.StatusOK, fields)
}

// Create handles POST /job-form-fields.
func (h *FormFieldHandler) Create(c *gin.Context) {
	var in formfields.FieldInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, apperrors.NewParseError(err.Error()))
		return
	}

	id, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Job form field added successfully",
		"id":      id,
	})
}

// Update handles PUT /job-form-fields/:id.
func (h *FormFieldHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, apperrors.NewValidationError("Missing required fields"))
		return
	}

	var in formfields.FieldInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, apperrors.NewParseError(err.Error()))
		return
	}

	affected, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	if affected == 0 {
		respondError(c, apperrors.NewNotFoundError("Job form field", id))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Job form field updated successfully",
	})
}

// Delete handles DELETE /job-form-fields/:id.
func (h *FormFieldHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, apperrors.NewValidationError("Missing required fields"))
		return
	}

	affected, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if affected == 0 {
		respondError(c, apperrors.NewNotFoundError("Job form field", id))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Job form field deleted successfully",
	})
}
