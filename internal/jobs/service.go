// internal/jobs/service.go
package jobs

import (
	"context"
	"database/sql"
	"errors"
	"time"

	apperrors "corpsite-backend/internal/common/errors"
	"corpsite-backend/internal/common/logger"
	"corpsite-backend/internal/models"
)

// Service manages job postings.
type Service struct {
	db     *sql.DB
	logger logger.Logger
}

func NewService(db *sql.DB, log logger.Logger) *Service {
	return &Service{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "jobs"}),
	}
}

// JobInput carries one create/update request.
type JobInput struct {
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
}

const jobColumns = `id, branch_id, title, category, location, schedule, date_posted,
	description, responsibilities, qualifications, benefits, company_name, apply_link,
	created_at, updated_at`

// List returns all postings, newest first.
func (s *Service) List(ctx context.Context) ([]models.Job, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM carrers_jobs ORDER BY id DESC`)
	if err != nil {
		return nil, apperrors.NewQueryError("Failed to fetch jobs", err)
	}
	defer rows.Close()

	out := make([]models.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, apperrors.NewQueryError("Failed to fetch jobs", err)
		}
		out = append(out, job)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryError("Failed to fetch jobs", err)
	}

	return out, nil
}

// Get returns one posting, or nil when the id does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*models.Job, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM carrers_jobs WHERE id = $1`, id)

	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewQueryError("Failed to fetch job", err)
	}
	return &job, nil
}

// Create persists a new posting and returns its generated id.
func (s *Service) Create(ctx context.Context, in JobInput) (int64, error) {
	if in.Title == "" || in.BranchID == 0 {
		return 0, apperrors.NewValidationError("Missing required fields")
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO carrers_jobs (
			branch_id, title, category, location, schedule, date_posted,
			description, responsibilities, qualifications, benefits,
			company_name, apply_link, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`,
		in.BranchID, in.Title, in.Category, in.Location, in.Schedule, in.DatePosted,
		in.Description, in.Responsibilities, in.Qualifications, in.Benefits,
		in.CompanyName, in.ApplyLink, time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return 0, apperrors.NewWriteError("Failed to insert job", err)
	}

	s.logger.Info("job created", map[string]interface{}{
		"jobId":    id,
		"branchId": in.BranchID,
		"title":    in.Title,
	})

	return id, nil
}

// Update rewrites an existing posting; the returned count is the number of
// rows matched.
func (s *Service) Update(ctx context.Context, id int64, in JobInput) (int64, error) {
	if id == 0 || in.BranchID == 0 {
		return 0, apperrors.NewValidationError("Missing required fields")
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE carrers_jobs SET
			branch_id = $1, title = $2, category = $3, location = $4, schedule = $5,
			date_posted = $6, description = $7, responsibilities = $8,
			qualifications = $9, benefits = $10, company_name = $11, apply_link = $12,
			updated_at = $13
		WHERE id = $14`,
		in.BranchID, in.Title, in.Category, in.Location, in.Schedule, in.DatePosted,
		in.Description, in.Responsibilities, in.Qualifications, in.Benefits,
		in.CompanyName, in.ApplyLink, time.Now().UTC(), id,
	)
	if err != nil {
		return 0, apperrors.NewWriteError("Failed to update job", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.NewWriteError("Failed to update job", err)
	}
	return affected, nil
}

// Delete removes a posting; deleting a missing id matches zero rows.
func (s *Service) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM carrers_jobs WHERE id = $1`, id)
	if err != nil {
		return 0, apperrors.NewWriteError("Failed to delete job", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.NewWriteError("Failed to delete job", err)
	}
	return affected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (models.Job, error) {
	var (
		job       models.Job
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)
	err := row.Scan(
		&job.ID, &job.BranchID, &job.Title, &job.Category, &job.Location,
		&job.Schedule, &job.DatePosted, &job.Description, &job.Responsibilities,
		&job.Qualifications, &job.Benefits, &job.CompanyName, &job.ApplyLink,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return job, err
	}
	if createdAt.Valid {
		job.CreatedAt = createdAt.Time.UTC().Format(time.RFC3339)
	}
	if updatedAt.Valid {
		job.UpdatedAt = updatedAt.Time.UTC().Format(time.RFC3339)
	}
	return job, nil
}
