package pendingaction

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/certhub/internal/domain/resource"
	"github.com/BruksfildServices01/certhub/internal/infra/lock"
	"github.com/BruksfildServices01/certhub/internal/infra/repository"
	"github.com/BruksfildServices01/certhub/internal/models"
	"github.com/BruksfildServices01/certhub/internal/testutil"
)

type fixture struct {
	db       *gorm.DB
	repo     *repository.PendingActionGormRepository
	registry *resource.Registry

	submit *SubmitPendingAction
	review *ReviewPendingAction
	cancel *CancelPendingAction
	list   *ListPendingActions
	get    *GetPendingAction

	user  uint
	other uint
	admin uint
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	repo := repository.NewPendingActionGormRepository(db)
	registry, err := resource.NewRegistry(repository.NewResourceStores(db)...)
	require.NoError(t, err)
	tx := repository.NewGormTransactor(db)

	return &fixture{
		db:       db,
		repo:     repo,
		registry: registry,
		submit:   NewSubmitPendingAction(repo, registry, tx, lock.NewLocalLocker(), nil),
		review:   NewReviewPendingAction(repo, registry, tx, nil),
		cancel:   NewCancelPendingAction(repo, tx, nil),
		list:     NewListPendingActions(repo, 10, 50),
		get:      NewGetPendingAction(repo),
		user:     testutil.SeedUser(t, db, "user@example.com", models.RoleUser).ID,
		other:    testutil.SeedUser(t, db, "other@example.com", models.RoleUser).ID,
		admin:    testutil.SeedUser(t, db, "admin@example.com", models.RoleAdmin).ID,
	}
}

func raw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func idPtr(id uint) *uint { return &id }

func (f *fixture) submitCreate(t *testing.T, actor uint, typ resource.Type, data any) (*models.PendingAction, error) {
	t.Helper()
	return f.submit.Execute(context.Background(), SubmitInput{
		ActorID:      actor,
		ActionType:   "create",
		ResourceType: string(typ),
		Data:         raw(t, data),
	})
}

func (f *fixture) submitUpdate(t *testing.T, actor uint, typ resource.Type, id uint, patch any) (*models.PendingAction, error) {
	t.Helper()
	return f.submit.Execute(context.Background(), SubmitInput{
		ActorID:      actor,
		ActionType:   "update",
		ResourceType: string(typ),
		ResourceID:   idPtr(id),
		Data:         raw(t, patch),
	})
}

func (f *fixture) submitDelete(t *testing.T, actor uint, typ resource.Type, id uint) (*models.PendingAction, error) {
	t.Helper()
	return f.submit.Execute(context.Background(), SubmitInput{
		ActorID:      actor,
		ActionType:   "delete",
		ResourceType: string(typ),
		ResourceID:   idPtr(id),
	})
}

func (f *fixture) decide(t *testing.T, id uint, decision, reason string) (*models.PendingAction, error) {
	t.Helper()
	return f.review.Execute(context.Background(), ReviewInput{
		ReviewerID:      f.admin,
		ActionID:        id,
		Decision:        decision,
		RejectionReason: reason,
	})
}

func (f *fixture) reload(t *testing.T, id uint) *models.PendingAction {
	t.Helper()
	pa, err := f.repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return pa
}

const shortDescription = "one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen sixteen"

func certificationData(name string, fields ...uint) map[string]any {
	return map[string]any{
		"name":              name,
		"shortDescription":  shortDescription,
		"description":       "Quality management",
		"certificationType": "Management",
		"callToAction":      "Apply now",
		"fields":            fields,
	}
}
