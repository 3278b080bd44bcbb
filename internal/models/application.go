// internal/models/application.go
package models

// ApplicationStatus is the flat status vocabulary an application can hold.
type ApplicationStatus string

const (
	StatusPending             ApplicationStatus = "pending"
	StatusApproved            ApplicationStatus = "approved"
	StatusRejected            ApplicationStatus = "rejected"
	StatusApprovedHRTechnical ApplicationStatus = "approved_from_hr_technical"
	StatusRejectedHRTechnical ApplicationStatus = "rejected_from_hr_technical"
	StatusApprovedHeadManager ApplicationStatus = "approved_from_head_manager"
	StatusRejectedHeadManager ApplicationStatus = "rejected_from_head_manager"
)

// Application is one applicant's submission for a job posting. ApplicantData
// is the free-form answers mapping keyed by field name; one key may hold the
// blob reference of an uploaded file.
type Application struct {
	ID            int64                  `json:"id"`
	JobID         int64                  `json:"job_id"`
	ApplicantData map[string]interface{} `json:"applicant_data"`
	Status        ApplicationStatus      `json:"status"`
	CreatedAt     string                 `json:"created_at"`
}
