// internal/models/formfield.go
package models

// Choice-type kinds carry an ordered option list; every other kind stores NULL.
const (
	FieldTypeText     = "text"
	FieldTypeSelect   = "select"
	FieldTypeDropdown = "dropdown"
	FieldTypeRadio    = "radio"
)

// FieldDefinition describes one admin-configured input control on a job's
// application form.
type FieldDefinition struct {
	ID        int64    `json:"id"`
	JobID     int64    `json:"job_id"`
	FieldName string   `json:"field_name"`
	FieldType string   `json:"field_type"`
	Options   []string `json:"options,omitempty"`
	Required  bool     `json:"required"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at,omitempty"`
}

// IsChoiceType reports whether the field type carries an option list.
func IsChoiceType(fieldType string) bool {
	switch fieldType {
	case FieldTypeSelect, FieldTypeDropdown, FieldTypeRadio:
		return true
	}
	return false
}
