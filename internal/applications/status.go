// internal/applications/status.go
package applications

import (
	"context"
	"database/sql"
	"errors"

	apperrors "corpsite-backend/internal/common/errors"
	"corpsite-backend/internal/common/metrics"
	"corpsite-backend/internal/models"
)

// allowedTransitions is the staged approval order enforced in strict mode:
// HR/technical review first, then the head manager, then the final decision.
// Rejections and final states are terminal.
var allowedTransitions = map[models.ApplicationStatus][]models.ApplicationStatus{
	models.StatusPending: {
		models.StatusApprovedHRTechnical,
		models.StatusRejectedHRTechnical,
	},
	models.StatusApprovedHRTechnical: {
		models.StatusApprovedHeadManager,
		models.StatusRejectedHeadManager,
	},
	models.StatusApprovedHeadManager: {
		models.StatusApproved,
		models.StatusRejected,
	},
}

func transitionAllowed(current, target models.ApplicationStatus) bool {
	for _, next := range allowedTransitions[current] {
		if next == target {
			return true
		}
	}
	return false
}

// SetStatus overwrites an application's status with the target value and
// returns the number of rows matched; zero means the id does not exist.
// In the default permissive mode the write is unconditional: no ordering is
// enforced and the last write wins. In strict mode the current status is
// checked against the transition table first.
func (s *Service) SetStatus(ctx context.Context, id int64, target models.ApplicationStatus) (int64, error) {
	if s.config.StrictTransitions {
		var current models.ApplicationStatus
		err := s.db.QueryRowContext(ctx,
			`SELECT status FROM job_applications WHERE id = $1`, id,
		).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		if err != nil {
			return 0, apperrors.NewQueryError("Failed to update application status", err)
		}
		if !transitionAllowed(current, target) {
			return 0, apperrors.NewIllegalTransitionError(string(current), string(target))
		}
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE job_applications SET status = $1 WHERE id = $2`, target, id)
	if err != nil {
		return 0, apperrors.NewWriteError("Failed to update application status", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.NewWriteError("Failed to update application status", err)
	}

	if affected > 0 {
		metrics.StatusTransitions.WithLabelValues(string(target)).Inc()
		s.logger.Info("application status updated", map[string]interface{}{
			"applicationId": id,
			"status":        target,
		})
	}

	return affected, nil
}
