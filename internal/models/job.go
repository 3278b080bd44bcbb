// internal/models/job.go
package models

// Job is one posting on the careers page.
type Job struct {
	ID               int64  `json:"id"`
	BranchID         int64  `json:"branch_id"`
	Title            string `json:"title"`
	Category         string `json:"category"`
	Location         string `json:"location"`
	Schedule         string `json:"schedule"`
	DatePosted       string `json:"date_posted"`
	Description      string `json:"description"`
	Responsibilities string `json:"responsibilities"`
	Qualifications   string `json:"qualifications"`
	Benefits         string `json:"benefits"`
	CompanyName      string `json:"company_name"`
	ApplyLink        string `json:"apply_link"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at,omitempty"`
}
