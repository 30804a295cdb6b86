package resource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/certhub/internal/httperr"
)

// memStore keeps FieldPayloads in memory; it stands in for any type.
type memStore struct {
	typ     Type
	nextID  uint
	records map[uint]*FieldPayload
	inUse   map[uint]bool
}

func newMemStore(typ Type) *memStore {
	return &memStore{typ: typ, nextID: 1, records: map[uint]*FieldPayload{}, inUse: map[uint]bool{}}
}

func (s *memStore) Type() Type { return s.typ }

func (s *memStore) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := s.records[id]
	return ok, nil
}

func (s *memStore) NameInUse(_ context.Context, name string, excludeID uint) (bool, error) {
	for id, r := range s.records {
		if id != excludeID && r.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) Load(_ context.Context, id uint) (Payload, error) {
	r, ok := s.records[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeResourceNotFound)
	}
	cp := *r
	return &cp, nil
}

func (s *memStore) Create(_ context.Context, p Payload) (uint, error) {
	id := s.nextID
	s.nextID++
	s.records[id] = p.(*FieldPayload)
	return id, nil
}

func (s *memStore) UpdateByID(_ context.Context, id uint, p Payload) error {
	s.records[id] = p.(*FieldPayload)
	return nil
}

func (s *memStore) DeleteByID(_ context.Context, id uint) error {
	if s.inUse[id] {
		return httperr.ErrBusiness(httperr.CodeReferenceInUse)
	}
	delete(s.records, id)
	return nil
}

func (s *memStore) Get(ctx context.Context, id uint) (any, error) { return s.Load(ctx, id) }

func (s *memStore) List(context.Context, int, int) (any, int64, error) {
	return s.records, int64(len(s.records)), nil
}

func fullRegistry(t *testing.T) (*Registry, map[Type]*memStore) {
	stores := map[Type]*memStore{}
	var all []Store
	for _, typ := range Types() {
		s := newMemStore(typ)
		stores[typ] = s
		all = append(all, s)
	}
	r, err := NewRegistry(all...)
	require.NoError(t, err)
	return r, stores
}

func TestNewRegistryIsExhaustive(t *testing.T) {
	_, err := NewRegistry(newMemStore(TypeField))
	assert.ErrorContains(t, err, "no store registered")

	_, err = NewRegistry(newMemStore(TypeField), newMemStore(TypeField))
	assert.ErrorContains(t, err, "duplicate store")

	r, _ := fullRegistry(t)
	for _, typ := range Types() {
		s, err := r.Lookup(typ)
		require.NoError(t, err)
		assert.Equal(t, typ, s.Type())
	}

	_, err = r.Lookup("Invoice")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeUnknownResourceType))
}

func TestApplyCreateUpdateDelete(t *testing.T) {
	r, stores := fullRegistry(t)
	ctx := context.Background()
	fields := stores[TypeField]

	res := r.Apply(ctx, Change{Op: OpCreate, Type: TypeField, Data: []byte(`{"name":"Safety"}`)})
	require.True(t, res.Applied(), "%v", res.Err)
	assert.Equal(t, uint(1), res.ResourceID)

	res = r.Apply(ctx, Change{Op: OpUpdate, Type: TypeField, ResourceID: 1, Data: []byte(`{"description":"Workplace safety"}`)})
	require.True(t, res.Applied(), "%v", res.Err)
	assert.Equal(t, "Safety", fields.records[1].Name)
	assert.Equal(t, "Workplace safety", fields.records[1].Description)

	fields.inUse[1] = true
	res = r.Apply(ctx, Change{Op: OpDelete, Type: TypeField, ResourceID: 1})
	assert.True(t, httperr.IsBusiness(res.Err, httperr.CodeReferenceInUse))

	fields.inUse[1] = false
	res = r.Apply(ctx, Change{Op: OpDelete, Type: TypeField, ResourceID: 1})
	require.True(t, res.Applied())
	assert.Empty(t, fields.records)
}

func TestApplyRevalidatesMergedUpdate(t *testing.T) {
	r, stores := fullRegistry(t)
	ctx := context.Background()
	stores[TypeField].records[7] = &FieldPayload{Name: "Safety"}

	res := r.Apply(ctx, Change{Op: OpUpdate, Type: TypeField, ResourceID: 7, Data: []byte(`{"name":""}`)})
	assert.False(t, res.Applied())
	assert.True(t, httperr.IsBusiness(res.Err, httperr.CodeValidation))
	assert.Equal(t, "Safety", stores[TypeField].records[7].Name)

	res = r.Apply(ctx, Change{Op: OpUpdate, Type: TypeField, ResourceID: 99, Data: []byte(`{"name":"Other"}`)})
	assert.True(t, httperr.IsBusiness(res.Err, httperr.CodeResourceNotFound))
}

func TestCheckReferences(t *testing.T) {
	r, stores := fullRegistry(t)
	ctx := context.Background()
	stores[TypeField].records[1] = &FieldPayload{Name: "Safety"}

	ok := &CertificationPayload{Fields: []uint{1}}
	require.NoError(t, r.CheckReferences(ctx, ok))

	missing := &CertificationPayload{Fields: []uint{1, 42}}
	err := r.CheckReferences(ctx, missing)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeResourceNotFound))
	assert.ErrorContains(t, err, "Field 42")

	require.NoError(t, r.CheckReferences(ctx, &PagePayload{}))
}
