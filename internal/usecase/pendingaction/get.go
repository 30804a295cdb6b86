package pendingaction

import (
	"context"

	domain "github.com/BruksfildServices01/certhub/internal/domain/pendingaction"
	"github.com/BruksfildServices01/certhub/internal/httperr"
	"github.com/BruksfildServices01/certhub/internal/models"
)

type GetPendingAction struct {
	repo domain.Repository
}

func NewGetPendingAction(repo domain.Repository) *GetPendingAction {
	return &GetPendingAction{repo: repo}
}

// Execute returns one action. Callers without privilege only see their own;
// anything else is reported as not found.
func (uc *GetPendingAction) Execute(
	ctx context.Context,
	actorID uint,
	privileged bool,
	actionID uint,
) (*models.PendingAction, error) {

	pa, err := uc.repo.GetByID(ctx, actionID)
	if err != nil {
		return nil, err
	}
	if !privileged && pa.RequestedBy != actorID {
		return nil, httperr.ErrBusinessf(httperr.CodeNotFound, "pending action %d not found", actionID)
	}
	return pa, nil
}
