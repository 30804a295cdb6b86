package pendingaction

import (
	"context"

	domain "github.com/BruksfildServices01/certhub/internal/domain/pendingaction"
	"github.com/BruksfildServices01/certhub/internal/domain/resource"
	"github.com/BruksfildServices01/certhub/internal/httperr"
	"github.com/BruksfildServices01/certhub/internal/models"
)

// StatusAll lifts the default pending-only filter for non-admin listings.
const StatusAll = "all"

type ListInput struct {
	ActorID    uint
	Privileged bool

	// Filters. Empty values mean "any", except Status for non-privileged
	// callers, which defaults to pending.
	RequestedBy  *uint
	ResourceType string
	ResourceID   *uint
	ActionType   string
	Status       string

	Page     int
	PageSize int
}

type ListOutput struct {
	Items    []models.PendingAction
	Total    int64
	Page     int
	PageSize int
}

type ListPendingActions struct {
	repo            domain.Repository
	defaultPageSize int
	maxPageSize     int
}

func NewListPendingActions(
	repo domain.Repository,
	defaultPageSize int,
	maxPageSize int,
) *ListPendingActions {
	return &ListPendingActions{
		repo:            repo,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

func (uc *ListPendingActions) Execute(
	ctx context.Context,
	in ListInput,
) (*ListOutput, error) {

	f, err := uc.filter(in)
	if err != nil {
		return nil, err
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	switch {
	case size < 1:
		size = uc.defaultPageSize
	case size > uc.maxPageSize:
		size = uc.maxPageSize
	}

	items, total, err := uc.repo.List(ctx, f, page, size)
	if err != nil {
		return nil, err
	}

	return &ListOutput{Items: items, Total: total, Page: page, PageSize: size}, nil
}

func (uc *ListPendingActions) filter(in ListInput) (domain.Filter, error) {
	var f domain.Filter

	if in.Privileged {
		f.RequestedBy = in.RequestedBy
	} else {
		actor := in.ActorID
		f.RequestedBy = &actor
	}

	switch {
	case in.Status == StatusAll:
	case in.Status == "" && !in.Privileged:
		f.Status = domain.StatusPending
	case in.Status != "":
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return f, err
		}
		f.Status = st
	}

	if in.ResourceType != "" {
		t, err := resource.ParseType(in.ResourceType)
		if err != nil {
			return f, err
		}
		f.ResourceType = t
	}

	if in.ActionType != "" {
		op, err := resource.ParseOperation(in.ActionType)
		if err != nil {
			return f, err
		}
		f.ActionType = op
	}

	if in.ResourceID != nil {
		if *in.ResourceID == 0 {
			return f, httperr.ErrBusinessf(httperr.CodeValidation, "resourceId must be positive")
		}
		f.ResourceID = in.ResourceID
	}

	return f, nil
}
