// internal/inquiries/service.go
package inquiries

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	apperrors "corpsite-backend/internal/common/errors"
	"corpsite-backend/internal/common/logger"
	"corpsite-backend/internal/common/metrics"
	"corpsite-backend/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// EmailSender is the slice of the SES client the service needs, mockable in
// tests.
type EmailSender interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Config holds the notification email settings.
type Config struct {
	EmailEnabled bool
	FromEmail    string
	InboxEmail   string
}

// Service stores contact messages and quote requests and notifies the
// configured inbox.
type Service struct {
	db     *sql.DB
	emails EmailSender
	config Config
	logger logger.Logger
}

func NewService(db *sql.DB, emails EmailSender, cfg Config, log logger.Logger) *Service {
	return &Service{
		db:     db,
		emails: emails,
		config: cfg,
		logger: log.WithFields(map[string]interface{}{"component": "inquiries"}),
	}
}

// InquiryInput is one contact or quote form submission.
type InquiryInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SubmitQuote stores a quote request and emails the inbox. An email failure
// fails the request even though the row is already stored.
func (s *Service) SubmitQuote(ctx context.Context, in InquiryInput) (int64, error) {
	id, err := s.insert(ctx, "quotes", in)
	if err != nil {
		return 0, err
	}
	metrics.InquiriesReceived.WithLabelValues("quote").Inc()

	if err := s.notify(ctx, "[Quote Request] "+in.Subject, in); err != nil {
		s.logger.Error("quote notification email failed", map[string]interface{}{
			"quoteId": id,
			"error":   err,
		})
		return id, apperrors.NewEmailSendError(err)
	}

	return id, nil
}

// SubmitContact stores a contact message and emails the inbox. An email
// failure is logged but does not fail the request.
func (s *Service) SubmitContact(ctx context.Context, in InquiryInput) (int64, error) {
	id, err := s.insert(ctx, "contacts", in)
	if err != nil {
		return 0, err
	}
	metrics.InquiriesReceived.WithLabelValues("contact").Inc()

	if err := s.notify(ctx, "[Contact Message] "+in.Subject, in); err != nil {
		s.logger.Error("contact notification email failed", map[string]interface{}{
			"contactId": id,
			"error":     err,
		})
	}

	return id, nil
}

func (s *Service) insert(ctx context.Context, table string, in InquiryInput) (int64, error) {
	if in.Name == "" || in.Email == "" || in.Subject == "" {
		return 0, apperrors.NewValidationError("Name, email, and subject are required")
	}

	var query string
	switch table {
	case "quotes":
		query = `INSERT INTO quotes (name, email, subject, message, created_at)
			VALUES ($1, $2, $3, $4, $5) RETURNING id`
	case "contacts":
		query = `INSERT INTO contacts (name, email, subject, message, created_at)
			VALUES ($1, $2, $3, $4, $5) RETURNING id`
	default:
		return 0, apperrors.NewWriteError("Failed to store inquiry", fmt.Errorf("unknown inquiry table %q", table))
	}

	var id int64
	err := s.db.QueryRowContext(ctx, query,
		in.Name, in.Email, in.Subject, in.Message, time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return 0, apperrors.NewWriteError("Failed to store inquiry", err)
	}

	return id, nil
}

// ListContacts returns all stored contact messages, newest first.
func (s *Service) ListContacts(ctx context.Context) ([]models.Inquiry, error) {
	return s.list(ctx, "contacts")
}

// ListQuotes returns all stored quote requests, newest first.
func (s *Service) ListQuotes(ctx context.Context) ([]models.Inquiry, error) {
	return s.list(ctx, "quotes")
}

func (s *Service) list(ctx context.Context, table string) ([]models.Inquiry, error) {
	var query string
	switch table {
	case "quotes":
		query = `SELECT id, name, email, subject, message, created_at FROM quotes ORDER BY id DESC`
	case "contacts":
		query = `SELECT id, name, email, subject, message, created_at FROM contacts ORDER BY id DESC`
	default:
		return nil, apperrors.NewQueryError("Failed to fetch inquiries", fmt.Errorf("unknown inquiry table %q", table))
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewQueryError("Failed to fetch inquiries", err)
	}
	defer rows.Close()

	out := make([]models.Inquiry, 0)
	for rows.Next() {
		var (
			inq       models.Inquiry
			createdAt sql.NullTime
		)
		if err := rows.Scan(&inq.ID, &inq.Name, &inq.Email, &inq.Subject, &inq.Message, &createdAt); err != nil {
			return nil, apperrors.NewQueryError("Failed to fetch inquiries", err)
		}
		if createdAt.Valid {
			inq.CreatedAt = createdAt.Time.UTC().Format(time.RFC3339)
		}
		out = append(out, inq)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryError("Failed to fetch inquiries", err)
	}

	return out, nil
}

func (s *Service) notify(ctx context.Context, subject string, in InquiryInput) error {
	if !s.config.EmailEnabled || s.emails == nil {
		return nil
	}

	body := fmt.Sprintf("Name: %s\nEmail: %s\nSubject: %s\nMessage: %s",
		in.Name, in.Email, in.Subject, in.Message)

	_, err := s.emails.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{s.config.InboxEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source:           aws.String(s.config.FromEmail),
		ReplyToAddresses: []string{in.Email},
	})
	return err
}
