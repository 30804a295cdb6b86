package pendingaction

import (
	"time"

	"github.com/BruksfildServices01/certhub/internal/models"
)

// ProcessingErrorPrefix starts the rejection reason of actions whose approval
// failed while being applied.
const ProcessingErrorPrefix = "Error processing action: "

// ===============================
// Domain Actions
// ===============================

func Approve(pa *models.PendingAction, reviewerID uint, now time.Time) error {
	if err := CanReview(Status(pa.Status)); err != nil {
		return err
	}

	pa.Status = string(StatusApproved)
	pa.ReviewedBy = &reviewerID
	pa.ReviewDate = &now
	pa.RejectionReason = ""
	return nil
}

func Reject(pa *models.PendingAction, reviewerID uint, reason string, now time.Time) error {
	if err := CanReview(Status(pa.Status)); err != nil {
		return err
	}

	pa.Status = string(StatusRejected)
	pa.ReviewedBy = &reviewerID
	pa.ReviewDate = &now
	pa.RejectionReason = reason
	return nil
}

// RejectFailed records an approval that could not be applied.
func RejectFailed(pa *models.PendingAction, reviewerID uint, cause error, now time.Time) error {
	return Reject(pa, reviewerID, ProcessingErrorPrefix+cause.Error(), now)
}
