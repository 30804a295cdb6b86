package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/certhub/internal/domain/resource"
	"github.com/BruksfildServices01/certhub/internal/httperr"
	"github.com/BruksfildServices01/certhub/internal/models"
)

// refGuard names a table column that points at the guarded type.
type refGuard struct {
	table  string
	column string
	label  string
}

// baseStore holds the queries shared by every resource table.
type baseStore[M any] struct {
	db         *gorm.DB
	typ        resource.Type
	nameColumn string
	orderBy    string
	preloads   []string
	guards     []refGuard
}

func (s *baseStore[M]) Type() resource.Type {
	return s.typ
}

func (s *baseStore[M]) conn(ctx context.Context) *gorm.DB {
	return Conn(ctx, s.db)
}

func (s *baseStore[M]) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := s.conn(ctx).Model(new(M)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, pkgerrors.Wrapf(err, "check %s exists", s.typ)
	}
	return count > 0, nil
}

func (s *baseStore[M]) NameInUse(ctx context.Context, name string, excludeID uint) (bool, error) {
	if s.nameColumn == "" || name == "" {
		return false, nil
	}

	q := s.conn(ctx).Model(new(M)).Where(s.nameColumn+" = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, pkgerrors.Wrapf(err, "check %s name", s.typ)
	}
	return count > 0, nil
}

func (s *baseStore[M]) ensureNameFree(ctx context.Context, name string, excludeID uint) error {
	taken, err := s.NameInUse(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return httperr.ErrBusinessf(httperr.CodeNameInUse, "%s named %q already exists", s.typ, name)
	}
	return nil
}

// find loads one row with its associations.
func (s *baseStore[M]) find(ctx context.Context, id uint) (*M, error) {
	q := s.conn(ctx)
	for _, p := range s.preloads {
		q = q.Preload(p)
	}

	var m M
	if err := q.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.notFound(id)
		}
		return nil, pkgerrors.Wrapf(err, "load %s", s.typ)
	}
	return &m, nil
}

// lock takes a row lock on id for the rest of the transaction.
func (s *baseStore[M]) lock(ctx context.Context, id uint) error {
	var ids []uint
	if err := s.conn(ctx).
		Model(new(M)).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Pluck("id", &ids).Error; err != nil {
		return pkgerrors.Wrapf(err, "lock %s", s.typ)
	}
	if len(ids) == 0 {
		return s.notFound(id)
	}
	return nil
}

func (s *baseStore[M]) notFound(id uint) error {
	return httperr.ErrBusinessf(httperr.CodeResourceNotFound, "%s %d not found", s.typ, id)
}

// guardReferences fails with reference_in_use while any guard row points at id.
func (s *baseStore[M]) guardReferences(ctx context.Context, id uint) error {
	var inUse []string
	for _, g := range s.guards {
		var count int64
		if err := s.conn(ctx).Table(g.table).Where(g.column+" = ?", id).Count(&count).Error; err != nil {
			return pkgerrors.Wrapf(err, "count %s references", g.table)
		}
		if count > 0 {
			inUse = append(inUse, fmt.Sprintf("%d %s", count, g.label))
		}
	}
	if len(inUse) > 0 {
		return httperr.ErrBusinessf(httperr.CodeReferenceInUse,
			"%s %d is still referenced by %s", s.typ, id, strings.Join(inUse, ", "))
	}
	return nil
}

func (s *baseStore[M]) deleteRow(ctx context.Context, id uint) error {
	if err := s.lock(ctx, id); err != nil {
		return err
	}
	if err := s.guardReferences(ctx, id); err != nil {
		return err
	}
	if err := s.conn(ctx).Delete(new(M), id).Error; err != nil {
		return pkgerrors.Wrapf(err, "delete %s", s.typ)
	}
	return nil
}

func (s *baseStore[M]) Get(ctx context.Context, id uint) (any, error) {
	return s.find(ctx, id)
}

func (s *baseStore[M]) List(ctx context.Context, page, limit int) (any, int64, error) {
	var total int64
	if err := s.conn(ctx).Model(new(M)).Count(&total).Error; err != nil {
		return nil, 0, pkgerrors.Wrapf(err, "count %s", s.typ)
	}

	q := s.conn(ctx)
	for _, p := range s.preloads {
		q = q.Preload(p)
	}

	items := []M{}
	offset, ok := pageOffset(page, limit)
	if !ok {
		return items, total, nil
	}
	if err := q.
		Order(s.orderBy).
		Limit(limit).
		Offset(offset).
		Find(&items).Error; err != nil {
		return nil, 0, pkgerrors.Wrapf(err, "list %s", s.typ)
	}
	return items, total, nil
}

// --------------------------------------------------
// Helpers shared by the concrete stores
// --------------------------------------------------

func payloadMismatch(want resource.Type, p resource.Payload) error {
	return pkgerrors.Errorf("%s store received %T", want, p)
}

// loadFields returns the fields for ids or resource_not_found if any is missing.
func loadFields(ctx context.Context, db *gorm.DB, ids []uint) ([]models.Field, error) {
	ids = resource.UniqueIDs(ids)
	fields := []models.Field{}
	if len(ids) == 0 {
		return fields, nil
	}
	if err := Conn(ctx, db).Where("id IN ?", ids).Find(&fields).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load fields")
	}
	if len(fields) != len(ids) {
		return nil, httperr.ErrBusinessf(httperr.CodeResourceNotFound, "one or more referenced fields do not exist")
	}
	return fields, nil
}

func fieldIDs(fields []models.Field) []uint {
	ids := make([]uint, 0, len(fields))
	for _, f := range fields {
		ids = append(ids, f.ID)
	}
	return ids
}

// requireRow checks that a row with id exists in model's table.
func requireRow(ctx context.Context, db *gorm.DB, model any, typ resource.Type, id uint) error {
	var count int64
	if err := Conn(ctx, db).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return pkgerrors.Wrapf(err, "check %s exists", typ)
	}
	if count == 0 {
		return httperr.ErrBusinessf(httperr.CodeResourceNotFound, "%s %d does not exist", typ, id)
	}
	return nil
}

// newCode returns PREFIX-XXXXXXXX with eight upper-case hex characters.
func newCode(prefix string) string {
	return prefix + "-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// NewResourceStores returns one store per resource type.
func NewResourceStores(db *gorm.DB) []resource.Store {
	return []resource.Store{
		NewFieldStore(db),
		NewCertificationStore(db),
		NewTrainingStore(db),
		NewCompanyStore(db),
		NewCompanyCertificationStore(db),
		NewCompanyTrainingStore(db),
		NewPageStore(db),
	}
}
