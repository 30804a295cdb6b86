package resource

import (
	"context"

	"github.com/pkg/errors"

	"github.com/BruksfildServices01/certhub/internal/httperr"
)

// Registry dispatches create/update/delete to the store owning each type.
type Registry struct {
	stores map[Type]Store
}

// NewRegistry fails unless every type in Types has exactly one store.
func NewRegistry(stores ...Store) (*Registry, error) {
	r := &Registry{stores: make(map[Type]Store, len(stores))}
	for _, s := range stores {
		if _, dup := r.stores[s.Type()]; dup {
			return nil, errors.Errorf("duplicate store for %s", s.Type())
		}
		r.stores[s.Type()] = s
	}
	for _, t := range Types() {
		if _, ok := r.stores[t]; !ok {
			return nil, errors.Errorf("no store registered for %s", t)
		}
	}
	return r, nil
}

func (r *Registry) Lookup(t Type) (Store, error) {
	s, ok := r.stores[t]
	if !ok {
		return nil, httperr.ErrBusinessf(httperr.CodeUnknownResourceType, "unknown resource type %q", t)
	}
	return s, nil
}

// CheckReferences verifies that every resource p points at exists.
func (r *Registry) CheckReferences(ctx context.Context, p Payload) error {
	ref, ok := p.(Referencer)
	if !ok {
		return nil
	}
	for _, dep := range ref.References() {
		store, err := r.Lookup(dep.Type)
		if err != nil {
			return err
		}
		for _, id := range dep.IDs {
			found, err := store.Exists(ctx, id)
			if err != nil {
				return errors.Wrapf(err, "check %s %d", dep.Type, id)
			}
			if !found {
				return httperr.ErrBusinessf(httperr.CodeResourceNotFound, "%s %d does not exist", dep.Type, id)
			}
		}
	}
	return nil
}

// Change is one approved mutation to apply.
type Change struct {
	Op         Operation
	Type       Type
	ResourceID uint
	Data       []byte
}

// ApplyResult carries either the affected resource id or the failure that
// prevented the change.
type ApplyResult struct {
	ResourceID uint
	Err        error
}

func (r ApplyResult) Applied() bool {
	return r.Err == nil
}

// Apply runs ch against its store. Update data is a patch merged onto the
// current record; the merged result is re-validated before it is saved.
func (r *Registry) Apply(ctx context.Context, ch Change) ApplyResult {
	id, err := r.apply(ctx, ch)
	return ApplyResult{ResourceID: id, Err: err}
}

func (r *Registry) apply(ctx context.Context, ch Change) (uint, error) {
	store, err := r.Lookup(ch.Type)
	if err != nil {
		return 0, err
	}

	switch ch.Op {
	case OpCreate:
		p, err := Decode(ch.Type, ch.Data)
		if err != nil {
			return 0, err
		}
		if err := Validate(p); err != nil {
			return 0, err
		}
		return store.Create(ctx, p)

	case OpUpdate:
		p, err := store.Load(ctx, ch.ResourceID)
		if err != nil {
			return 0, err
		}
		if err := ApplyPatch(p, ch.Data); err != nil {
			return 0, err
		}
		if err := Validate(p); err != nil {
			return 0, err
		}
		return ch.ResourceID, store.UpdateByID(ctx, ch.ResourceID, p)

	case OpDelete:
		return ch.ResourceID, store.DeleteByID(ctx, ch.ResourceID)

	default:
		return 0, httperr.ErrBusinessf(httperr.CodeValidation, "unsupported operation %q", ch.Op)
	}
}
