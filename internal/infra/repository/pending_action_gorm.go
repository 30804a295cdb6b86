package repository

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/certhub/internal/domain/pendingaction"
	"github.com/BruksfildServices01/certhub/internal/domain/resource"
	"github.com/BruksfildServices01/certhub/internal/httperr"
	"github.com/BruksfildServices01/certhub/internal/models"
)

type PendingActionGormRepository struct {
	db *gorm.DB
}

var _ domain.Repository = (*PendingActionGormRepository)(nil)

func NewPendingActionGormRepository(db *gorm.DB) *PendingActionGormRepository {
	return &PendingActionGormRepository{db: db}
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func (r *PendingActionGormRepository) Create(
	ctx context.Context,
	pa *models.PendingAction,
) error {

	// the savepoint keeps the surrounding transaction usable after an index violation
	err := Conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		return tx.Create(pa).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return r.classifyConflict(ctx, pa)
	}
	return pkgerrors.Wrap(err, "create pending action")
}

// classifyConflict reports which pending index rejected pa.
func (r *PendingActionGormRepository) classifyConflict(
	ctx context.Context,
	pa *models.PendingAction,
) error {

	if pa.ResourceID == nil {
		return domain.ErrUniqueKeyConflict
	}
	if pa.UniqueKey == nil {
		return domain.ErrInFlightConflict
	}

	found, err := r.FindInFlight(ctx, resource.Type(pa.ResourceType), *pa.ResourceID, domain.ActionType(pa.ActionType))
	if err != nil {
		return err
	}
	if found != nil {
		return domain.ErrInFlightConflict
	}
	return domain.ErrUniqueKeyConflict
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *PendingActionGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.PendingAction, error) {

	return r.first(Conn(ctx, r.db), id)
}

func (r *PendingActionGormRepository) GetForUpdate(
	ctx context.Context,
	id uint,
) (*models.PendingAction, error) {

	return r.first(Conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *PendingActionGormRepository) first(q *gorm.DB, id uint) (*models.PendingAction, error) {
	var pa models.PendingAction
	if err := q.First(&pa, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusinessf(httperr.CodeNotFound, "pending action %d not found", id)
		}
		return nil, pkgerrors.Wrap(err, "get pending action")
	}
	return &pa, nil
}

func (r *PendingActionGormRepository) List(
	ctx context.Context,
	f domain.Filter,
	page int,
	limit int,
) ([]models.PendingAction, int64, error) {

	q := Conn(ctx, r.db).Model(&models.PendingAction{})

	if f.RequestedBy != nil {
		q = q.Where("requested_by = ?", *f.RequestedBy)
	}
	if f.ResourceType != "" {
		q = q.Where("resource_type = ?", string(f.ResourceType))
	}
	if f.ResourceID != nil {
		q = q.Where("resource_id = ?", *f.ResourceID)
	}
	if f.ActionType != "" {
		q = q.Where("action_type = ?", string(f.ActionType))
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(err, "count pending actions")
	}

	items := []models.PendingAction{}
	offset, ok := pageOffset(page, limit)
	if !ok {
		return items, total, nil
	}
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(err, "list pending actions")
	}

	return items, total, nil
}

func (r *PendingActionGormRepository) CountByStatus(
	ctx context.Context,
	requestedBy uint,
) (map[domain.Status]int64, error) {

	var rows []struct {
		Status string
		Total  int64
	}
	if err := Conn(ctx, r.db).
		Model(&models.PendingAction{}).
		Select("status, COUNT(*) AS total").
		Where("requested_by = ?", requestedBy).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "count pending actions by status")
	}

	out := map[domain.Status]int64{
		domain.StatusPending:  0,
		domain.StatusApproved: 0,
		domain.StatusRejected: 0,
	}
	for _, row := range rows {
		out[domain.Status(row.Status)] = row.Total
	}
	return out, nil
}

// --------------------------------------------------
// Conflicts
// --------------------------------------------------

func (r *PendingActionGormRepository) FindInFlight(
	ctx context.Context,
	resourceType resource.Type,
	resourceID uint,
	action domain.ActionType,
) (*models.PendingAction, error) {

	q := Conn(ctx, r.db).
		Where("resource_type = ? AND resource_id = ? AND action_type = ? AND status = ?",
			string(resourceType), resourceID, string(action), string(domain.StatusPending))

	return r.takeOptional(q)
}

func (r *PendingActionGormRepository) FindPendingByUniqueKey(
	ctx context.Context,
	resourceType resource.Type,
	key string,
	excludeResourceID uint,
) (*models.PendingAction, error) {

	q := Conn(ctx, r.db).
		Where("resource_type = ? AND unique_key = ? AND status = ?",
			string(resourceType), key, string(domain.StatusPending))

	if excludeResourceID != 0 {
		q = q.Where("(resource_id IS NULL OR resource_id <> ?)", excludeResourceID)
	}

	return r.takeOptional(q)
}

func (r *PendingActionGormRepository) takeOptional(q *gorm.DB) (*models.PendingAction, error) {
	var pa models.PendingAction
	err := q.Take(&pa).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "find pending action")
	}
	return &pa, nil
}

// --------------------------------------------------
// State change
// --------------------------------------------------

func (r *PendingActionGormRepository) Transition(
	ctx context.Context,
	pa *models.PendingAction,
) error {

	res := Conn(ctx, r.db).
		Model(&models.PendingAction{}).
		Where("id = ? AND status = ?", pa.ID, string(domain.StatusPending)).
		Updates(map[string]any{
			"status":           pa.Status,
			"reviewed_by":      pa.ReviewedBy,
			"review_date":      pa.ReviewDate,
			"rejection_reason": pa.RejectionReason,
			"updated_at":       time.Now(),
		})
	if res.Error != nil {
		return pkgerrors.Wrap(res.Error, "update pending action")
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusinessf(httperr.CodeAlreadyProcessed, "pending action %d was already processed", pa.ID)
	}
	return nil
}

func (r *PendingActionGormRepository) DeletePending(
	ctx context.Context,
	id uint,
	requestedBy uint,
) (bool, error) {

	res := Conn(ctx, r.db).
		Where("id = ? AND requested_by = ? AND status = ?", id, requestedBy, string(domain.StatusPending)).
		Delete(&models.PendingAction{})
	if res.Error != nil {
		return false, pkgerrors.Wrap(res.Error, "delete pending action")
	}
	return res.RowsAffected > 0, nil
}
