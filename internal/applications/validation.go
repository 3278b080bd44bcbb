// internal/applications/validation.go
package applications

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "corpsite-backend/internal/common/errors"

	"github.com/xeipuuv/gojsonschema"
)

type fieldSpec struct {
	name     string
	options  []string
	required bool
}

// validateAgainstSchema compiles the job's field definitions into a JSON
// schema and validates the applicant data against it. Jobs without field
// definitions accept anything.
func (s *Service) validateAgainstSchema(ctx context.Context, jobID int64, data map[string]interface{}) error {
	fields, err := s.loadFieldSpecs(ctx, jobID)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}

	schemaLoader := gojsonschema.NewGoLoader(buildSchema(fields))
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return apperrors.NewQueryError("Failed to validate application", err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return apperrors.NewValidationError(
			fmt.Sprintf("Application data does not match the job form: %s", strings.Join(details, "; ")))
	}

	return nil
}

func (s *Service) loadFieldSpecs(ctx context.Context, jobID int64) ([]fieldSpec, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT field_name, options, required FROM job_form_fields WHERE job_id = $1`, jobID)
	if err != nil {
		return nil, apperrors.NewQueryError("Failed to validate application", err)
	}
	defer rows.Close()

	var fields []fieldSpec
	for rows.Next() {
		var (
			spec    fieldSpec
			options sql.NullString
		)
		if err := rows.Scan(&spec.name, &options, &spec.required); err != nil {
			return nil, apperrors.NewQueryError("Failed to validate application", err)
		}
		if options.Valid && options.String != "" {
			if err := json.Unmarshal([]byte(options.String), &spec.options); err != nil {
				s.logger.Warn("stored options is not a JSON array", map[string]interface{}{
					"fieldName": spec.name,
					"error":     err,
				})
			}
		}
		fields = append(fields, spec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryError("Failed to validate application", err)
	}

	return fields, nil
}

// buildSchema maps field definitions onto a JSON schema object. Answers are
// strings; choice-type fields constrain the value to their option list.
// Extra keys (for example the injected blob reference) stay allowed.
func buildSchema(fields []fieldSpec) map[string]interface{} {
	properties := make(map[string]interface{}, len(fields))
	var required []string

	for _, f := range fields {
		prop := map[string]interface{}{"type": "string"}
		if len(f.options) > 0 {
			prop["enum"] = f.options
		}
		properties[f.name] = prop
		if f.required {
			required = append(required, f.name)
		}
	}

	schema := map[string]interface{}{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": true,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
