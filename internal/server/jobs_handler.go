// internal/server/jobs_handler.go
package server

import (
	"net/http"
	"strconv"

	apperrors "corpsite-backend/internal/common/errors"
	"corpsite-backend/internal/common/logger"
	"corpsite-backend/internal/jobs"

	"github.com/gin-gonic/gin"
)

// JobHandler exposes the career posting CRUD endpoints.
type JobHandler struct {
	svc    *jobs.Service
	logger logger.Logger
}

func NewJobHandler(svc *jobs.Service, log logger.Logger) *JobHandler {
	return &JobHandler{svc: svc, logger: log}
}

// List handles GET /jobs.
func (h *JobHandler) List(c *gin.Context) {
	all, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondListError(c, err)
		return
	}
	c.JSON(http.StatusOK, all)
}

// Get handles GET /jobs/:id.
func (h *JobHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondListError(c, apperrors.NewValidationError("Invalid job id"))
		return
	}

	job, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondListError(c, err)
		return
	}
	if job == nil {
		respondListError(c, apperrors.NewNotFoundError("Job", id))
		return
	}
	c.JSON(http.StatusOK, job)
}

// Create handles POST /jobs.
func (h *JobHandler) Create(c *gin.Context) {
	var in jobs.JobInput
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
		"message": "Job added successfully",
		"id":      id,
	})
}

// Update handles PUT /jobs/:id.
func (h *JobHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, apperrors.NewValidationError("Invalid job id"))
		return
	}

	var in jobs.JobInput
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
		respondError(c, apperrors.NewNotFoundError("Job", id))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Job updated successfully",
	})
}

// Delete handles DELETE /jobs/:id.
func (h *JobHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, apperrors.NewValidationError("Invalid job id"))
		return
	}

	affected, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if affected == 0 {
		respondError(c, apperrors.NewNotFoundError("Job", id))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Job deleted successfully",
	})
}
