// internal/models/inquiry.go
package models

// Inquiry is a contact message or quote request submitted from the website.
type Inquiry struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message,omitempty"`
	CreatedAt string `json:"created_at"`
}
