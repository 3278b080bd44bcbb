package applications

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	apperrors "corpsite-backend/internal/common/errors"
	"corpsite-backend/internal/models"
)

// ==========================
// Permissive Mode Tests
// ==========================

func TestService_SetStatus_Permissive(t *testing.T) {
	svc, mock, cleanup := newTestService(t, &fakeBlobStore{}, Config{})
	defer cleanup()

	mock.ExpectExec(`UPDATE job_applications SET status = \$1 WHERE id = \$2`).
		WithArgs(models.StatusApprovedHRTechnical, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := svc.SetStatus(context.Background(), 5, models.StatusApprovedHRTechnical)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SetStatus_Permissive_LastWriteWins(t *testing.T) {
	// Permissive mode never reads the current status: approve then reject
	// simply overwrites, no ordering is enforced.
	svc, mock, cleanup := newTestService(t, &fakeBlobStore{}, Config{})
	defer cleanup()

	mock.ExpectExec(`UPDATE job_applications SET status`).
		WithArgs(models.StatusApproved, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE job_applications SET status`).
		WithArgs(models.StatusRejected, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := svc.SetStatus(context.Background(), 5, models.StatusApproved)
	assert.NoError(t, err)

	affected, err := svc.SetStatus(context.Background(), 5, models.StatusRejected)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SetStatus_UnknownID(t *testing.T) {
	svc, mock, cleanup := newTestService(t, &fakeBlobStore{}, Config{})
	defer cleanup()

	mock.ExpectExec(`UPDATE job_applications SET status`).
		WithArgs(models.StatusApproved, int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := svc.SetStatus(context.Background(), 404, models.StatusApproved)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

// ==========================
// Strict Mode Tests
// ==========================

func TestService_SetStatus_Strict_AllowedTransition(t *testing.T) {
	svc, mock, cleanup := newTestService(t, &fakeBlobStore{}, Config{StrictTransitions: true})
	defer cleanup()

	mock.ExpectQuery(`SELECT status FROM job_applications WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
	mock.ExpectExec(`UPDATE job_applications SET status`).
		WithArgs(models.StatusApprovedHRTechnical, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := svc.SetStatus(context.Background(), 5, models.StatusApprovedHRTechnical)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SetStatus_Strict_IllegalTransition(t *testing.T) {
	svc, mock, cleanup := newTestService(t, &fakeBlobStore{}, Config{StrictTransitions: true})
	defer cleanup()

	mock.ExpectQuery(`SELECT status FROM job_applications WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))

	_, err := svc.SetStatus(context.Background(), 5, models.StatusApproved)
	assert.Error(t, err)

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeIllegalTransition, stdErr.Code)
}

func TestService_SetStatus_Strict_TerminalStateIsFinal(t *testing.T) {
	svc, mock, cleanup := newTestService(t, &fakeBlobStore{}, Config{StrictTransitions: true})
	defer cleanup()

	mock.ExpectQuery(`SELECT status FROM job_applications WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("rejected"))

	_, err := svc.SetStatus(context.Background(), 5, models.StatusApproved)
	assert.Error(t, err)

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeIllegalTransition, stdErr.Code)
}

func TestService_SetStatus_Strict_UnknownID(t *testing.T) {
	svc, mock, cleanup := newTestService(t, &fakeBlobStore{}, Config{StrictTransitions: true})
	defer cleanup()

	mock.ExpectQuery(`SELECT status FROM job_applications WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))

	affected, err := svc.SetStatus(context.Background(), 404, models.StatusApproved)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

// ==========================
// Transition Table Tests
// ==========================

func TestTransitionAllowed(t *testing.T) {
	tests := []struct {
		current models.ApplicationStatus
		target  models.ApplicationStatus
		allowed bool
	}{
		{models.StatusPending, models.StatusApprovedHRTechnical, true},
		{models.StatusPending, models.StatusRejectedHRTechnical, true},
		{models.StatusPending, models.StatusApproved, false},
		{models.StatusApprovedHRTechnical, models.StatusApprovedHeadManager, true},
		{models.StatusApprovedHRTechnical, models.StatusRejected, false},
		{models.StatusApprovedHeadManager, models.StatusApproved, true},
		{models.StatusApprovedHeadManager, models.StatusRejected, true},
		{models.StatusRejectedHRTechnical, models.StatusApprovedHeadManager, false},
		{models.StatusApproved, models.StatusRejected, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.current)+"->"+string(tt.target), func(t *testing.T) {
			assert.Equal(t, tt.allowed, transitionAllowed(tt.current, tt.target))
		})
	}
}
