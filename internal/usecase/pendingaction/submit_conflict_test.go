package pendingaction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/certhub/internal/domain/pendingaction"
	"github.com/BruksfildServices01/certhub/internal/domain/resource"
	"github.com/BruksfildServices01/certhub/internal/httperr"
	"github.com/BruksfildServices01/certhub/internal/infra/lock"
	"github.com/BruksfildServices01/certhub/internal/infra/repository"
	"github.com/BruksfildServices01/certhub/internal/models"
	"github.com/BruksfildServices01/certhub/internal/testutil"
)

// staleLookupRepo answers every conflict lookup with "nothing pending", as a
// submission racing past the lookups would see it. Inserts still hit the
// storage indexes.
type staleLookupRepo struct {
	domain.Repository
}

func (staleLookupRepo) FindInFlight(context.Context, resource.Type, uint, domain.ActionType) (*models.PendingAction, error) {
	return nil, nil
}

func (staleLookupRepo) FindPendingByUniqueKey(context.Context, resource.Type, string, uint) (*models.PendingAction, error) {
	return nil, nil
}

func TestIndexViolationsMapToTheMatchingConflict(t *testing.T) {
	f := setup(t)
	safety := testutil.SeedField(t, f.db, "Safety")
	quality := testutil.SeedField(t, f.db, "Quality")

	submit := NewSubmitPendingAction(
		staleLookupRepo{f.repo}, f.registry, repository.NewGormTransactor(f.db), lock.NewLocalLocker(), nil,
	)
	update := func(actor, id uint, patch map[string]any) error {
		_, err := submit.Execute(context.Background(), SubmitInput{
			ActorID:      actor,
			ActionType:   "update",
			ResourceType: string(resource.TypeField),
			ResourceID:   &id,
			Data:         raw(t, patch),
		})
		return err
	}

	require.NoError(t, update(f.user, safety.ID, map[string]any{"name": "Health"}))

	// a second rename of the same field is a duplicate, whatever the new name
	err := update(f.other, safety.ID, map[string]any{"name": "Hygiene"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeDuplicatePending), "%v", err)

	// renaming another field to the claimed name is a name conflict
	err = update(f.other, quality.ID, map[string]any{"name": "Health"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodePendingNameConflict), "%v", err)

	_, err = submit.Execute(context.Background(), SubmitInput{
		ActorID:      f.other,
		ActionType:   "create",
		ResourceType: string(resource.TypeField),
		Data:         raw(t, map[string]any{"name": "Health"}),
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodePendingNameConflict), "%v", err)

	var pending int64
	require.NoError(t, f.db.Model(&models.PendingAction{}).Where("status = ?", "pending").Count(&pending).Error)
	assert.Equal(t, int64(1), pending)
}

func TestStorageConflictFallsBackToTheCandidateShape(t *testing.T) {
	named := candidate{Action: "update", Type: resource.TypeField, ResourceID: 2, UniqueKey: "Health"}
	plain := candidate{Action: "update", Type: resource.TypeField, ResourceID: 2}

	assert.True(t, httperr.IsBusiness(storageConflict(named, domain.ErrInFlightConflict), httperr.CodeDuplicatePending))
	assert.True(t, httperr.IsBusiness(storageConflict(named, domain.ErrUniqueKeyConflict), httperr.CodePendingNameConflict))
	assert.True(t, httperr.IsBusiness(storageConflict(named, domain.ErrStorageConflict), httperr.CodePendingNameConflict))
	assert.True(t, httperr.IsBusiness(storageConflict(plain, domain.ErrStorageConflict), httperr.CodeDuplicatePending))
}
