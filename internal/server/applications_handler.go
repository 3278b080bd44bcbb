// internal/server/applications_handler.go
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"corpsite-backend/internal/applications"
	apperrors "corpsite-backend/internal/common/errors"
	"corpsite-backend/internal/common/logger"
	"corpsite-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// statusActions is the explicit route table for the approval pipeline: each
// action path segment maps to the status it writes.
var statusActions = map[string]models.ApplicationStatus{
	"approve":              models.StatusApproved,
	"reject":               models.StatusRejected,
	"approve_hr_technical": models.StatusApprovedHRTechnical,
	"reject_hr_technical":  models.StatusRejectedHRTechnical,
	"approve_head_manager": models.StatusApprovedHeadManager,
	"reject_head_manager":  models.StatusRejectedHeadManager,
}

// ApplicationHandler exposes application intake and the approval pipeline
// over HTTP.
type ApplicationHandler struct {
	svc       *applications.Service
	maxUpload int64
	logger    logger.Logger
}

func NewApplicationHandler(svc *applications.Service, maxUpload int64, log logger.Logger) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, maxUpload: maxUpload, logger: log}
}

// List handles GET /applications with an optional job_id filter.
func (h *ApplicationHandler) List(c *gin.Context) {
	var jobID int64
	if raw := c.Query("job_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondListError(c, apperrors.NewValidationError("Invalid job id"))
			return
		}
		jobID = parsed
	}

	apps, err := h.svc.List(c.Request.Context(), jobID)
	if err != nil {
		respondListError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// Submit handles POST /applications, accepting either a JSON body or a
// multipart form carrying applicant_data as a JSON string plus at most one
// file part.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var in applications.SubmitInput

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		parsed, err := h.parseMultipart(c)
		if err != nil {
			respondError(c, err)
			return
		}
		in = *parsed
	} else {
		var body struct {
			JobID         int64                  `json:"job_id"`
			ApplicantData map[string]interface{} `json:"applicant_data"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			respondError(c, apperrors.NewParseError(err.Error()))
			return
		}
		in.JobID = body.JobID
		in.ApplicantData = body.ApplicantData
	}

	id, err := h.svc.Submit(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Application added successfully",
		"id":      id,
	})
}

func (h *ApplicationHandler) parseMultipart(c *gin.Context) (*applications.SubmitInput, error) {
	in := &applications.SubmitInput{}

	if raw := c.PostForm("job_id"); raw != "" {
		jobID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, apperrors.NewParseError("job_id is not a number")
		}
		in.JobID = jobID
	}

	if raw := c.PostForm("applicant_data"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.ApplicantData); err != nil {
			return nil, apperrors.NewParseError("applicant_data is not valid JSON")
		}
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, apperrors.NewParseError(err.Error())
	}

	// At most one file part is expected; its field name keys the blob
	// reference inside the applicant data.
	for fieldName, headers := range form.File {
		if len(headers) == 0 {
			continue
		}
		fh := headers[0]
		if h.maxUpload > 0 && fh.Size > h.maxUpload {
			return nil, apperrors.NewValidationError("Uploaded file is too large")
		}

		f, err := fh.Open()
		if err != nil {
			return nil, apperrors.NewUploadError(err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, apperrors.NewUploadError(err)
		}

		in.File = &applications.FileUpload{
			FieldName: fieldName,
			FileName:  fh.Filename,
			Data:      data,
		}
		break
	}

	return in, nil
}

// UpdateStatus handles POST /applications/:id/:action, dispatching the
// action segment through the status route table.
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	target, ok := statusActions[c.Param("action")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Unknown action"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, apperrors.NewValidationError("Missing application id"))
		return
	}

	affected, err := h.svc.SetStatus(c.Request.Context(), id, target)
	if err != nil {
		respondError(c, err)
		return
	}
	if affected == 0 {
		respondError(c, apperrors.NewNotFoundError("Application", id))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Application status updated to " + string(target),
	})
}
