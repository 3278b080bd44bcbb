package applications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	apperrors "corpsite-backend/internal/common/errors"
	"corpsite-backend/internal/common/logger"
	"corpsite-backend/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

// fakeBlobStore records the last upload and returns a fixed key.
type fakeBlobStore struct {
	key      string
	err      error
	lastName string
	lastData []byte
}

func (f *fakeBlobStore) Put(_ context.Context, data []byte, suggestedName string) (string, error) {
	f.lastName = suggestedName
	f.lastData = data
	if f.err != nil {
		return "", f.err
	}
	return f.key, nil
}

func newTestService(t *testing.T, blobs BlobStore, cfg Config) (*Service, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	svc := NewService(db, blobs, cfg, logger.NewTestLogger(t))
	return svc, mock, func() { db.Close() }
}

// ==========================
// Submit Tests
// ==========================

func TestService_Submit_JSONBody(t *testing.T) {
	svc, mock, cleanup := newTestService(t, &fakeBlobStore{}, Config{})
	defer cleanup()

	mock.ExpectQuery(`INSERT INTO job_applications`).
		WithArgs(int64(7), sqlmock.AnyArg(), models.StatusPending, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))

	id, err := svc.Submit(context.Background(), SubmitInput{
		JobID:         7,
		ApplicantData: map[string]interface{}{"full_name": "Jane Doe"},
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(21), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Submit_FileInjectsBlobReference(t *testing.T) {
	blobs := &fakeBlobStore{key: "9f3c2d1e.pdf"}
	svc, mock, cleanup := newTestService(t, blobs, Config{})
	defer cleanup()

	mock.ExpectQuery(`INSERT INTO job_applications`).
		WithArgs(int64(7), sqlmock.AnyArg(), models.StatusPending, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(22))

	id, err := svc.Submit(context.Background(), SubmitInput{
		JobID:         7,
		ApplicantData: map[string]interface{}{"full_name": "Jane Doe"},
		File: &FileUpload{
			FieldName: "resume",
			FileName:  "cv.pdf",
			Data:      []byte("%PDF-1.4"),
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(22), id)
	assert.Equal(t, "cv.pdf", blobs.lastName)
	assert.Equal(t, []byte("%PDF-1.4"), blobs.lastData)
}

func TestService_Submit_FileOnlySubmission(t *testing.T) {
	// A bare file upload still counts as applicant data once the blob
	// reference is injected.
	blobs := &fakeBlobStore{key: "ab12.pdf"}
	svc, mock, cleanup := newTestService(t, blobs, Config{})
	defer cleanup()

	mock.ExpectQuery(`INSERT INTO job_applications`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(23))

	id, err := svc.Submit(context.Background(), SubmitInput{
		JobID: 7,
		File:  &FileUpload{FieldName: "resume", FileName: "cv.pdf", Data: []byte("x")},
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(23), id)
}

func TestService_Submit_BlobWriteFails(t *testing.T) {
	blobs := &fakeBlobStore{err: errors.New("bucket unreachable")}
	svc, _, cleanup := newTestService(t, blobs, Config{})
	defer cleanup()

	_, err := svc.Submit(context.Background(), SubmitInput{
		JobID:         7,
		ApplicantData: map[string]interface{}{"full_name": "Jane Doe"},
		File:          &FileUpload{FieldName: "resume", FileName: "cv.pdf", Data: []byte("x")},
	})
	assert.Error(t, err)

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeUploadFailed, stdErr.Code)
}

func TestService_Submit_MissingRequiredFields(t *testing.T) {
	svc, _, cleanup := newTestService(t, &fakeBlobStore{}, Config{})
	defer cleanup()

	tests := []struct {
		name  string
		input SubmitInput
	}{
		{
			name:  "missing job id",
			input: SubmitInput{ApplicantData: map[string]interface{}{"a": "b"}},
		},
		{
			name:  "missing applicant data",
			input: SubmitInput{JobID: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tt.input)
			assert.Error(t, err)

			stdErr := apperrors.Normalize(err)
			assert.Equal(t, apperrors.ErrCodeValidationFailed, stdErr.Code)
			assert.Equal(t, "Missing required fields", stdErr.Message)
		})
	}
}

func TestService_Submit_InsertFails(t *testing.T) {
	svc, mock, cleanup := newTestService(t, &fakeBlobStore{}, Config{})
	defer cleanup()

	mock.ExpectQuery(`INSERT INTO job_applications`).
		WillReturnError(errors.New("disk full"))

	_, err := svc.Submit(context.Background(), SubmitInput{
		JobID:         7,
		ApplicantData: map[string]interface{}{"full_name": "Jane Doe"},
	})
	assert.Error(t, err)

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeWriteFailed, stdErr.Code)
}

// ==========================
// List Tests
// ==========================

func TestService_List_AllApplications(t *testing.T) {
	svc, mock, cleanup := newTestService(t, &fakeBlobStore{}, Config{})
	defer cleanup()

	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "job_id", "applicant_data", "status", "created_at"}).
		AddRow(1, 7, `{"full_name":"Jane Doe"}`, "pending", created).
		AddRow(2, 8, `{"full_name":"John Roe","resume":"ab12.pdf"}`, "approved", created)

	mock.ExpectQuery(`SELECT id, job_id, applicant_data, status, created_at FROM job_applications$`).
		WillReturnRows(rows)

	apps, err := svc.List(context.Background(), 0)
	assert.NoError(t, err)
	assert.Len(t, apps, 2)
	assert.Equal(t, "Jane Doe", apps[0].ApplicantData["full_name"])
	assert.Equal(t, models.StatusApproved, apps[1].Status)
	assert.Equal(t, "ab12.pdf", apps[1].ApplicantData["resume"])
	assert.Equal(t, "2024-03-01T10:00:00Z", apps[0].CreatedAt)
}

func TestService_List_FilteredByJob(t *testing.T) {
	svc, mock, cleanup := newTestService(t, &fakeBlobStore{}, Config{})
	defer cleanup()

	mock.ExpectQuery(`FROM job_applications WHERE job_id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "job_id", "applicant_data", "status", "created_at"}).
			AddRow(1, 7, `{"full_name":"Jane Doe"}`, "pending", time.Now()))

	apps, err := svc.List(context.Background(), 7)
	assert.NoError(t, err)
	assert.Len(t, apps, 1)
	assert.Equal(t, int64(7), apps[0].JobID)
}

func TestService_List_Empty(t *testing.T) {
	svc, mock, cleanup := newTestService(t, &fakeBlobStore{}, Config{})
	defer cleanup()

	mock.ExpectQuery(`FROM job_applications`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "job_id", "applicant_data", "status", "created_at"}))

	apps, err := svc.List(context.Background(), 0)
	assert.NoError(t, err)
	assert.NotNil(t, apps)
	assert.Len(t, apps, 0)
}
