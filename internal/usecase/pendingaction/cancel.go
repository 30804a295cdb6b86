package pendingaction

import (
	"context"

	"github.com/BruksfildServices01/certhub/internal/audit"
	domain "github.com/BruksfildServices01/certhub/internal/domain/pendingaction"
	"github.com/BruksfildServices01/certhub/internal/httperr"
	"github.com/BruksfildServices01/certhub/internal/logging"
	"github.com/BruksfildServices01/certhub/internal/metrics"
)

type CancelPendingAction struct {
	repo  domain.Repository
	tx    domain.Transactor
	audit *audit.Dispatcher
}

func NewCancelPendingAction(
	repo domain.Repository,
	tx domain.Transactor,
	audit *audit.Dispatcher,
) *CancelPendingAction {
	return &CancelPendingAction{
		repo:  repo,
		tx:    tx,
		audit: audit,
	}
}

// Execute removes a pending action on behalf of its requester.
func (uc *CancelPendingAction) Execute(
	ctx context.Context,
	actorID uint,
	actionID uint,
) error {

	var resourceType, actionType string

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		pa, err := uc.repo.GetForUpdate(ctx, actionID)
		if err != nil {
			return err
		}
		if err := domain.CanCancel(domain.Status(pa.Status), pa.RequestedBy, actorID); err != nil {
			return err
		}

		deleted, err := uc.repo.DeletePending(ctx, actionID, actorID)
		if err != nil {
			return err
		}
		if !deleted {
			return httperr.ErrBusinessf(httperr.CodeAlreadyProcessed, "pending action %d was already processed", actionID)
		}

		resourceType, actionType = pa.ResourceType, pa.ActionType
		return nil
	})
	if err != nil {
		return err
	}

	metrics.ObservePendingAction(resourceType, actionType, metrics.OutcomeCancelled)

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   audit.ActionCancelled,
		Entity:   audit.EntityPendingAction,
		EntityID: &actionID,
	})

	logging.Log.
		WithField("pending_action_id", actionID).
		WithField("requested_by", actorID).
		Info("pending action cancelled")

	return nil
}
