package pendingaction

import (
	"github.com/BruksfildServices01/certhub/internal/domain/resource"
	"github.com/BruksfildServices01/certhub/internal/httperr"
)

// ===============================
// Pending Action Status
// ===============================

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusApproved, StatusRejected:
		return st, nil
	default:
		return "", httperr.ErrBusinessf(httperr.CodeValidation, "status must be one of pending, approved, rejected; got %q", s)
	}
}

// ParseDecision accepts only the two terminal statuses.
func ParseDecision(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusApproved, StatusRejected:
		return st, nil
	default:
		return "", httperr.ErrBusinessf(httperr.CodeValidation, "decision must be approved or rejected; got %q", s)
	}
}

// ===============================
// Action Types
// ===============================

type ActionType = resource.Operation

const (
	ActionCreate = resource.OpCreate
	ActionUpdate = resource.OpUpdate
	ActionDelete = resource.OpDelete
)

// ===============================
// Validations
// ===============================

// CanReview: only pending actions can be decided, and only once.
func CanReview(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusinessf(httperr.CodeAlreadyProcessed, "action is already %s", current)
	}
	return nil
}

// CanCancel: the requester may withdraw an action while it is pending.
func CanCancel(current Status, requestedBy, actorID uint) error {
	if requestedBy != actorID {
		return httperr.ErrBusinessf(httperr.CodeForbidden, "only the requester can cancel this action")
	}
	if current != StatusPending {
		return httperr.ErrBusinessf(httperr.CodeAlreadyProcessed, "action is already %s", current)
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
