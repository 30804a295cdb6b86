package pendingaction

import (
	"context"

	domain "github.com/BruksfildServices01/certhub/internal/domain/pendingaction"
	"github.com/BruksfildServices01/certhub/internal/domain/resource"
	"github.com/BruksfildServices01/certhub/internal/httperr"
)

// candidate is a submission that has passed payload validation.
type candidate struct {
	Action     domain.ActionType
	Type       resource.Type
	ResourceID uint
	// UniqueKey is set when the submission introduces a new unique name.
	UniqueKey string
}

// conflictChecker rejects a candidate that collides with live or pending data.
// Callers run it inside the transaction that inserts the candidate.
type conflictChecker struct {
	repo     domain.Repository
	registry *resource.Registry
}

func (c *conflictChecker) check(ctx context.Context, cand candidate) error {
	if cand.ResourceID != 0 {
		inFlight, err := c.repo.FindInFlight(ctx, cand.Type, cand.ResourceID, cand.Action)
		if err != nil {
			return err
		}
		if inFlight != nil {
			return httperr.ErrBusinessf(httperr.CodeDuplicatePending,
				"a pending %s for %s %d already exists (action %d)",
				cand.Action, cand.Type, cand.ResourceID, inFlight.ID)
		}
	}

	if cand.UniqueKey == "" {
		return nil
	}

	store, err := c.registry.Lookup(cand.Type)
	if err != nil {
		return err
	}
	taken, err := store.NameInUse(ctx, cand.UniqueKey, cand.ResourceID)
	if err != nil {
		return err
	}
	if taken {
		return httperr.ErrBusinessf(httperr.CodeNameInUse,
			"%s named %q already exists", cand.Type, cand.UniqueKey)
	}

	pending, err := c.repo.FindPendingByUniqueKey(ctx, cand.Type, cand.UniqueKey, cand.ResourceID)
	if err != nil {
		return err
	}
	if pending != nil {
		return httperr.ErrBusinessf(httperr.CodePendingNameConflict,
			"%s named %q is already awaiting approval (action %d)", cand.Type, cand.UniqueKey, pending.ID)
	}
	return nil
}
