package pendingaction

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/certhub/internal/audit"
	domain "github.com/BruksfildServices01/certhub/internal/domain/pendingaction"
	"github.com/BruksfildServices01/certhub/internal/domain/resource"
	"github.com/BruksfildServices01/certhub/internal/logging"
	"github.com/BruksfildServices01/certhub/internal/metrics"
	"github.com/BruksfildServices01/certhub/internal/models"
)

type ReviewInput struct {
	ReviewerID      uint
	ActionID        uint
	Decision        string
	RejectionReason string
}

type ReviewPendingAction struct {
	repo     domain.Repository
	registry *resource.Registry
	tx       domain.Transactor
	audit    *audit.Dispatcher
	now      func() time.Time
}

func NewReviewPendingAction(
	repo domain.Repository,
	registry *resource.Registry,
	tx domain.Transactor,
	audit *audit.Dispatcher,
) *ReviewPendingAction {
	return &ReviewPendingAction{
		repo:     repo,
		registry: registry,
		tx:       tx,
		audit:    audit,
		now:      time.Now,
	}
}

// Execute decides a pending action. Approval applies the change and records
// the decision in one transaction; if the change cannot be applied it is
// rolled back and the action is stored as rejected with the failure reason.
func (uc *ReviewPendingAction) Execute(
	ctx context.Context,
	in ReviewInput,
) (*models.PendingAction, error) {

	decision, err := domain.ParseDecision(in.Decision)
	if err != nil {
		return nil, err
	}

	var (
		pa      *models.PendingAction
		applied resource.ApplyResult
	)

	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		pa, err = uc.repo.GetForUpdate(ctx, in.ActionID)
		if err != nil {
			return err
		}
		if err := domain.CanReview(domain.Status(pa.Status)); err != nil {
			return err
		}

		now := uc.now()

		if decision == domain.StatusRejected {
			if err := domain.Reject(pa, in.ReviewerID, in.RejectionReason, now); err != nil {
				return err
			}
			return uc.repo.Transition(ctx, pa)
		}

		applied = uc.apply(ctx, pa)
		if applied.Applied() {
			err = domain.Approve(pa, in.ReviewerID, now)
		} else {
			err = domain.RejectFailed(pa, in.ReviewerID, applied.Err, now)
		}
		if err != nil {
			return err
		}
		return uc.repo.Transition(ctx, pa)
	})
	if err != nil {
		return nil, err
	}

	uc.record(in.ReviewerID, pa, applied)
	return pa, nil
}

// apply runs the change inside a savepoint so a failure leaves no partial
// writes while the outer transaction can still record the rejection.
func (uc *ReviewPendingAction) apply(ctx context.Context, pa *models.PendingAction) resource.ApplyResult {
	change := resource.Change{
		Op:   resource.Operation(pa.ActionType),
		Type: resource.Type(pa.ResourceType),
		Data: pa.Data,
	}
	if pa.ResourceID != nil {
		change.ResourceID = *pa.ResourceID
	}

	var res resource.ApplyResult
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		res = uc.registry.Apply(ctx, change)
		return res.Err
	})
	if err != nil && res.Err == nil {
		res.Err = err
	}
	return res
}

func (uc *ReviewPendingAction) record(reviewerID uint, pa *models.PendingAction, applied resource.ApplyResult) {
	action, outcome := audit.ActionApproved, metrics.OutcomeApproved
	switch {
	case pa.Status == string(domain.StatusRejected) && applied.Err != nil:
		action, outcome = audit.ActionFailed, metrics.OutcomeAutoRejected
	case pa.Status == string(domain.StatusRejected):
		action, outcome = audit.ActionRejected, metrics.OutcomeRejected
	}

	metrics.ObservePendingAction(pa.ResourceType, pa.ActionType, outcome)

	meta := map[string]any{
		"actionType":   pa.ActionType,
		"resourceType": pa.ResourceType,
		"status":       pa.Status,
	}
	if applied.Applied() && applied.ResourceID != 0 {
		meta["resourceId"] = applied.ResourceID
	}
	if pa.RejectionReason != "" {
		meta["reason"] = pa.RejectionReason
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &reviewerID,
		Action:   action,
		Entity:   audit.EntityPendingAction,
		EntityID: &pa.ID,
		Metadata: meta,
	})

	entry := logging.Log.WithFields(logrus.Fields{
		"pending_action_id": pa.ID,
		"resource_type":     pa.ResourceType,
		"action_type":       pa.ActionType,
		"reviewed_by":       reviewerID,
		"status":            pa.Status,
	})
	if applied.Err != nil {
		entry.WithError(applied.Err).Warn("pending action could not be applied")
		return
	}
	entry.Info("pending action reviewed")
}
