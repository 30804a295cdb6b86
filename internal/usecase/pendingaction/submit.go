package pendingaction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/certhub/internal/audit"
	domain "github.com/BruksfildServices01/certhub/internal/domain/pendingaction"
	"github.com/BruksfildServices01/certhub/internal/domain/resource"
	"github.com/BruksfildServices01/certhub/internal/httperr"
	"github.com/BruksfildServices01/certhub/internal/logging"
	"github.com/BruksfildServices01/certhub/internal/metrics"
	"github.com/BruksfildServices01/certhub/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type SubmitInput struct {
	ActorID      uint
	ActionType   string
	ResourceType string
	ResourceID   *uint
	Data         json.RawMessage
}

// ======================================================
// USE CASE
// ======================================================

type SubmitPendingAction struct {
	repo      domain.Repository
	registry  *resource.Registry
	tx        domain.Transactor
	locker    domain.Locker
	conflicts *conflictChecker
	audit     *audit.Dispatcher
}

func NewSubmitPendingAction(
	repo domain.Repository,
	registry *resource.Registry,
	tx domain.Transactor,
	locker domain.Locker,
	audit *audit.Dispatcher,
) *SubmitPendingAction {
	return &SubmitPendingAction{
		repo:      repo,
		registry:  registry,
		tx:        tx,
		locker:    locker,
		conflicts: &conflictChecker{repo: repo, registry: registry},
		audit:     audit,
	}
}

// prepared is a validated submission ready for the conflict check.
type prepared struct {
	candidate
	data []byte
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *SubmitPendingAction) Execute(
	ctx context.Context,
	in SubmitInput,
) (*models.PendingAction, error) {

	// --------------------------------------------------
	// 1. Shape and payload validation
	// --------------------------------------------------
	p, err := uc.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Serialize submissions that could collide
	// --------------------------------------------------
	unlock, err := uc.locker.Lock(ctx, lockKey(p.candidate))
	if err != nil {
		return nil, errors.Wrap(err, "lock submission")
	}
	defer unlock()

	// --------------------------------------------------
	// 3. Conflict check and insert, atomically
	// --------------------------------------------------
	pa := &models.PendingAction{
		ActionType:   string(p.Action),
		ResourceType: string(p.Type),
		Data:         datatypes.JSON(p.data),
		RequestedBy:  in.ActorID,
		Status:       string(domain.InitialStatus()),
	}
	if p.ResourceID != 0 {
		id := p.ResourceID
		pa.ResourceID = &id
	}
	if p.UniqueKey != "" {
		key := p.UniqueKey
		pa.UniqueKey = &key
	}

	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.conflicts.check(ctx, p.candidate); err != nil {
			return err
		}
		return uc.repo.Create(ctx, pa)
	})
	if errors.Is(err, domain.ErrStorageConflict) {
		err = storageConflict(p.candidate, err)
	}
	if err != nil {
		if httperr.Code(err) != "" {
			metrics.ObservePendingAction(string(p.Type), string(p.Action), metrics.OutcomeConflict)
		}
		return nil, err
	}

	// --------------------------------------------------
	// 4. Side effects
	// --------------------------------------------------
	metrics.ObservePendingAction(pa.ResourceType, pa.ActionType, metrics.OutcomeSubmitted)

	actor := in.ActorID
	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor,
		Action:   audit.ActionSubmitted,
		Entity:   audit.EntityPendingAction,
		EntityID: &pa.ID,
		Metadata: map[string]any{
			"actionType":   pa.ActionType,
			"resourceType": pa.ResourceType,
			"resourceId":   pa.ResourceID,
		},
	})

	logging.Log.WithFields(logrus.Fields{
		"pending_action_id": pa.ID,
		"action_type":       pa.ActionType,
		"resource_type":     pa.ResourceType,
		"requested_by":      pa.RequestedBy,
	}).Info("pending action submitted")

	return pa, nil
}

// prepare validates the shape of the submission and the payload it carries.
// For updates the patch is checked by merging it onto the live record.
func (uc *SubmitPendingAction) prepare(ctx context.Context, in SubmitInput) (*prepared, error) {
	op, err := resource.ParseOperation(in.ActionType)
	if err != nil {
		return nil, err
	}
	typ, err := resource.ParseType(in.ResourceType)
	if err != nil {
		return nil, err
	}
	store, err := uc.registry.Lookup(typ)
	if err != nil {
		return nil, err
	}

	out := &prepared{candidate: candidate{Action: op, Type: typ}}
	hasData := !resource.IsEmpty(in.Data)

	switch op {
	case domain.ActionCreate:
		if in.ResourceID != nil {
			return nil, httperr.ErrBusinessf(httperr.CodeValidation, "resourceId must not be set for create")
		}
		if !hasData {
			return nil, httperr.ErrBusinessf(httperr.CodeValidation, "data is required for create")
		}
		payload, err := resource.Decode(typ, in.Data)
		if err != nil {
			return nil, err
		}
		if err := resource.Validate(payload); err != nil {
			return nil, err
		}
		if err := uc.registry.CheckReferences(ctx, payload); err != nil {
			return nil, err
		}
		// store the normalized payload so approval applies exactly what was checked
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrap(err, "encode payload")
		}
		out.data = data
		out.UniqueKey = payload.UniqueKey()

	case domain.ActionUpdate:
		if in.ResourceID == nil || *in.ResourceID == 0 {
			return nil, httperr.ErrBusinessf(httperr.CodeValidation, "resourceId is required for update")
		}
		if !hasData {
			return nil, httperr.ErrBusinessf(httperr.CodeValidation, "data is required for update")
		}
		keys, err := resource.PatchKeys(in.Data)
		if err != nil {
			return nil, httperr.ErrBusinessf(httperr.CodeValidation, "data must be a JSON object")
		}
		if len(keys) == 0 {
			return nil, httperr.ErrBusinessf(httperr.CodeValidation, "data must change at least one attribute")
		}
		current, err := store.Load(ctx, *in.ResourceID)
		if err != nil {
			return nil, err
		}
		before := current.UniqueKey()
		if err := resource.ApplyPatch(current, in.Data); err != nil {
			return nil, err
		}
		if err := resource.Validate(current); err != nil {
			return nil, err
		}
		if err := uc.registry.CheckReferences(ctx, current); err != nil {
			return nil, err
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, in.Data); err != nil {
			return nil, httperr.ErrBusinessf(httperr.CodeValidation, "data must be valid JSON")
		}
		out.data = compact.Bytes()
		out.ResourceID = *in.ResourceID
		if after := current.UniqueKey(); after != before {
			out.UniqueKey = after
		}

	case domain.ActionDelete:
		if in.ResourceID == nil || *in.ResourceID == 0 {
			return nil, httperr.ErrBusinessf(httperr.CodeValidation, "resourceId is required for delete")
		}
		if hasData {
			return nil, httperr.ErrBusinessf(httperr.CodeValidation, "data must be empty for delete")
		}
		found, err := store.Exists(ctx, *in.ResourceID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, httperr.ErrBusinessf(httperr.CodeResourceNotFound, "%s %d not found", typ, *in.ResourceID)
		}
		out.ResourceID = *in.ResourceID
	}

	return out, nil
}

// lockKey groups submissions that can conflict with each other: the same
// unique name, or the same target and action.
func lockKey(c candidate) string {
	if c.UniqueKey != "" {
		return fmt.Sprintf("%s:name:%s", c.Type, strings.ToLower(c.UniqueKey))
	}
	if c.ResourceID != 0 {
		return fmt.Sprintf("%s:%d:%s", c.Type, c.ResourceID, c.Action)
	}
	return fmt.Sprintf("%s:%s", c.Type, c.Action)
}

// storageConflict translates an index violation into the error the
// application-level check would have returned.
func storageConflict(c candidate, err error) error {
	name := c.UniqueKey != ""
	switch {
	case errors.Is(err, domain.ErrInFlightConflict):
		name = false
	case errors.Is(err, domain.ErrUniqueKeyConflict):
		name = true
	}
	if name {
		return httperr.ErrBusinessf(httperr.CodePendingNameConflict,
			"%s named %q is already awaiting approval", c.Type, c.UniqueKey)
	}
	return httperr.ErrBusinessf(httperr.CodeDuplicatePending,
		"a pending %s for %s %d already exists", c.Action, c.Type, c.ResourceID)
}
