// internal/formfields/service.go
package formfields

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	apperrors "corpsite-backend/internal/common/errors"
	"corpsite-backend/internal/common/logger"
	"corpsite-backend/internal/models"
)

// Service manages the input-field definitions attached to job postings.
type Service struct {
	db     *sql.DB
	logger logger.Logger
}

func NewService(db *sql.DB, log logger.Logger) *Service {
	return &Service{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "formfields"}),
	}
}

// FieldInput carries one create/update request. Options and Required are left
// loosely typed: clients send options as either a JSON array or a
// comma-separated string, and required as a bool, number or string.
type FieldInput struct {
	JobID     int64       `json:"job_id"`
	FieldName string      `json:"field_name"`
	FieldType string      `json:"field_type"`
	Options   interface{} `json:"options"`
	Required  interface{} `json:"required"`
}

// NormalizeOptions turns the loosely typed options value into an ordered
// string slice. Non-choice field types always normalize to nil.
func NormalizeOptions(fieldType string, options interface{}) []string {
	if !models.IsChoiceType(fieldType) || options == nil {
		return nil
	}

	switch v := options.(type) {
	case []string:
		if len(v) == 0 {
			return nil
		}
		return v
	case []interface{}:
		if len(v) == 0 {
			return nil
		}
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return strings.Split(v, ",")
	}
	return nil
}

// NormalizeRequired coerces the loosely typed required flag to a bool,
// defaulting to false.
func NormalizeRequired(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case int:
		return val != 0
	case string:
		return val == "true" || val == "1"
	}
	return false
}

// List returns all field definitions for a job. No definitions is an empty
// slice, not an error; ordering is not part of the contract.
func (s *Service) List(ctx context.Context, jobID int64) ([]models.FieldDefinition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, job_id, field_name, field_type, options, required, created_at, updated_at
		FROM job_form_fields WHERE job_id = $1`, jobID)
	if err != nil {
		return nil, apperrors.NewQueryError("Failed to fetch job form fields", err)
	}
	defer rows.Close()

	fields := make([]models.FieldDefinition, 0)
	for rows.Next() {
		var (
			fd        models.FieldDefinition
			options   sql.NullString
			createdAt sql.NullTime
			updatedAt sql.NullTime
		)
		if err := rows.Scan(&fd.ID, &fd.JobID, &fd.FieldName, &fd.FieldType, &options, &fd.Required, &createdAt, &updatedAt); err != nil {
			return nil, apperrors.NewQueryError("Failed to fetch job form fields", err)
		}
		if options.Valid && options.String != "" {
			if err := json.Unmarshal([]byte(options.String), &fd.Options); err != nil {
				s.logger.Warn("stored options is not a JSON array", map[string]interface{}{
					"fieldId": fd.ID,
					"error":   err,
				})
			}
		}
		if createdAt.Valid {
			fd.CreatedAt = createdAt.Time.UTC().Format(time.RFC3339)
		}
		if updatedAt.Valid {
			fd.UpdatedAt = updatedAt.Time.UTC().Format(time.RFC3339)
		}
		fields = append(fields, fd)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryError("Failed to fetch job form fields", err)
	}

	return fields, nil
}

// Create persists a new field definition and returns its generated id.
func (s *Service) Create(ctx context.Context, in FieldInput) (int64, error) {
	if in.JobID == 0 || in.FieldName == "" || in.FieldType == "" {
		return 0, apperrors.NewValidationError("Missing required fields")
	}

	optionsValue := serializeOptions(NormalizeOptions(in.FieldType, in.Options))
	required := NormalizeRequired(in.Required)

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO job_form_fields (job_id, field_name, field_type, options, required, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		in.JobID, in.FieldName, in.FieldType, optionsValue, required, time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return 0, apperrors.NewWriteError("Failed to add job form field", err)
	}

	s.logger.Info("job form field created", map[string]interface{}{
		"fieldId":   id,
		"jobId":     in.JobID,
		"fieldName": in.FieldName,
		"fieldType": in.FieldType,
	})

	return id, nil
}

// Update rewrites an existing field definition. The returned count is the
// number of rows matched, zero when the id does not exist.
func (s *Service) Update(ctx context.Context, id int64, in FieldInput) (int64, error) {
	if id == 0 || in.FieldName == "" || in.FieldType == "" {
		return 0, apperrors.NewValidationError("Missing required fields")
	}

	optionsValue := serializeOptions(NormalizeOptions(in.FieldType, in.Options))
	required := NormalizeRequired(in.Required)

	res, err := s.db.ExecContext(ctx, `
		UPDATE job_form_fields
		SET field_name = $1, field_type = $2, options = $3, required = $4, updated_at = $5
		WHERE id = $6`,
		in.FieldName, in.FieldType, optionsValue, required, time.Now().UTC(), id,
	)
	if err != nil {
		return 0, apperrors.NewWriteError("Failed to update job form field", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.NewWriteError("Failed to update job form field", err)
	}
	return affected, nil
}

// Delete removes a field definition; deleting a missing id matches zero rows.
func (s *Service) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM job_form_fields WHERE id = $1`, id)
	if err != nil {
		return 0, apperrors.NewWriteError("Failed to delete job form field", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.NewWriteError("Failed to delete job form field", err)
	}
	return affected, nil
}

// serializeOptions renders the normalized option list for the nullable
// options column: a JSON array for choice types, NULL otherwise.
func serializeOptions(options []string) interface{} {
	if len(options) == 0 {
		return nil
	}
	encoded, err := json.Marshal(options)
	if err != nil {
		return nil
	}
	return string(encoded)
}
