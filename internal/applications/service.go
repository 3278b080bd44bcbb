// internal/applications/service.go
package applications

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	apperrors "corpsite-backend/internal/common/errors"
	"corpsite-backend/internal/common/logger"
	"corpsite-backend/internal/common/metrics"
	"corpsite-backend/internal/models"
)

// BlobStore is the slice of the blob store the intake path needs.
type BlobStore interface {
	Put(ctx context.Context, data []byte, suggestedName string) (string, error)
}

// Config holds the intake and pipeline policy switches.
type Config struct {
	// ValidateSubmissions cross-checks applicant data against the job's
	// field definitions before persisting. Off preserves the original
	// lenient behavior: submissions are never validated against the schema.
	ValidateSubmissions bool
	// StrictTransitions enforces the staged approval order instead of the
	// original last-write-wins overwrite.
	StrictTransitions bool
}

// Service accepts applicant submissions and advances them through the
// approval pipeline.
type Service struct {
	db     *sql.DB
	blobs  BlobStore
	config Config
	logger logger.Logger
}

func NewService(db *sql.DB, blobs BlobStore, cfg Config, log logger.Logger) *Service {
	return &Service{
		db:     db,
		blobs:  blobs,
		config: cfg,
		logger: log.WithFields(map[string]interface{}{"component": "applications"}),
	}
}

// FileUpload is one file part extracted from a multipart submission.
type FileUpload struct {
	FieldName string
	FileName  string
	Data      []byte
}

// SubmitInput is one intake request after transport decoding.
type SubmitInput struct {
	JobID         int64
	ApplicantData map[string]interface{}
	File          *FileUpload
}

// Submit persists one application. The attached file, when present, is
// written to the blob store first and its reference injected into the
// applicant data under the upload part's field name. A blob write failure
// aborts the whole submission; a later insert failure leaves the blob
// orphaned, with no compensating cleanup.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (int64, error) {
	data := in.ApplicantData
	if data == nil {
		data = map[string]interface{}{}
	}

	if in.File != nil {
		ref, err := s.blobs.Put(ctx, in.File.Data, in.File.FileName)
		if err != nil {
			return 0, apperrors.NewUploadError(err)
		}
		data[in.File.FieldName] = ref
	}

	if in.JobID == 0 || len(data) == 0 {
		return 0, apperrors.NewValidationError("Missing required fields")
	}

	if s.config.ValidateSubmissions {
		if err := s.validateAgainstSchema(ctx, in.JobID, data); err != nil {
			return 0, err
		}
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return 0, apperrors.NewWriteError("Failed to add application", err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO job_applications (job_id, applicant_data, status, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		in.JobID, payload, models.StatusPending, time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return 0, apperrors.NewWriteError("Failed to add application", err)
	}

	metrics.ApplicationsSubmitted.Inc()
	s.logger.Info("application submitted", map[string]interface{}{
		"applicationId": id,
		"jobId":         in.JobID,
		"hasFile":       in.File != nil,
	})

	return id, nil
}

// List returns applications, optionally filtered by job. jobID zero means
// no filter.
func (s *Service) List(ctx context.Context, jobID int64) ([]models.Application, error) {
	query := `SELECT id, job_id, applicant_data, status, created_at FROM job_applications`
	args := []interface{}{}
	if jobID != 0 {
		query += ` WHERE job_id = $1`
		args = append(args, jobID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewQueryError("Failed to fetch applications", err)
	}
	defer rows.Close()

	apps := make([]models.Application, 0)
	for rows.Next() {
		var (
			app       models.Application
			payload   []byte
			createdAt sql.NullTime
		)
		if err := rows.Scan(&app.ID, &app.JobID, &payload, &app.Status, &createdAt); err != nil {
			return nil, apperrors.NewQueryError("Failed to fetch applications", err)
		}
		if err := json.Unmarshal(payload, &app.ApplicantData); err != nil {
			s.logger.Warn("stored applicant data is not valid JSON", map[string]interface{}{
				"applicationId": app.ID,
				"error":         err,
			})
		}
		if createdAt.Valid {
			app.CreatedAt = createdAt.Time.UTC().Format(time.RFC3339)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryError("Failed to fetch applications", err)
	}

	return apps, nil
}
