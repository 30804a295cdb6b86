package pendingaction

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/certhub/internal/domain/resource"
	"github.com/BruksfildServices01/certhub/internal/httperr"
)

func seedActions(t *testing.T, f *fixture) {
	t.Helper()
	for i := 0; i < 3; i++ {
		_, err := f.submitCreate(t, f.user, resource.TypeField, map[string]any{"name": fmt.Sprintf("User field %d", i)})
		require.NoError(t, err)
	}
	decided, err := f.submitCreate(t, f.user, resource.TypeField, map[string]any{"name": "Decided"})
	require.NoError(t, err)
	_, err = f.decide(t, decided.ID, "rejected", "no")
	require.NoError(t, err)

	_, err = f.submitCreate(t, f.other, resource.TypePage, map[string]any{"name": "about", "title": "About", "body": "<p>x</p>"})
	require.NoError(t, err)
}

func TestListScopesNonPrivilegedCallers(t *testing.T) {
	f := setup(t)
	seedActions(t, f)
	ctx := context.Background()

	out, err := f.list.Execute(ctx, ListInput{ActorID: f.user})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Total)
	assert.Equal(t, 10, out.PageSize)
	for _, pa := range out.Items {
		assert.Equal(t, f.user, pa.RequestedBy)
		assert.Equal(t, "pending", pa.Status)
	}

	// a requestedBy filter cannot widen the scope
	out, err = f.list.Execute(ctx, ListInput{ActorID: f.user, RequestedBy: &f.other, Status: StatusAll})
	require.NoError(t, err)
	assert.Equal(t, int64(4), out.Total)

	out, err = f.list.Execute(ctx, ListInput{ActorID: f.user, Status: "rejected"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
}

func TestListForAdmins(t *testing.T) {
	f := setup(t)
	seedActions(t, f)
	ctx := context.Background()

	out, err := f.list.Execute(ctx, ListInput{ActorID: f.admin, Privileged: true})
	require.NoError(t, err)
	assert.Equal(t, int64(5), out.Total)

	out, err = f.list.Execute(ctx, ListInput{ActorID: f.admin, Privileged: true, Status: "pending", ResourceType: "Page"})
	require.NoError(t, err)
	require.Equal(t, int64(1), out.Total)
	assert.Equal(t, f.other, out.Items[0].RequestedBy)

	out, err = f.list.Execute(ctx, ListInput{ActorID: f.admin, Privileged: true, RequestedBy: &f.user, Page: 2, PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(4), out.Total)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, 2, out.Page)

	out, err = f.list.Execute(ctx, ListInput{ActorID: f.admin, Privileged: true, PageSize: 1000})
	require.NoError(t, err)
	assert.Equal(t, 50, out.PageSize)
}

func TestListPastTheLastPageIsEmpty(t *testing.T) {
	f := setup(t)
	seedActions(t, f)
	ctx := context.Background()

	out, err := f.list.Execute(ctx, ListInput{ActorID: f.user, Page: 100, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Total)
	assert.Empty(t, out.Items)

	// (page-1)*size would wrap around to a small offset
	huge := math.MaxInt/10 + 2
	out, err = f.list.Execute(ctx, ListInput{ActorID: f.user, Page: huge, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Total)
	assert.Empty(t, out.Items)
	assert.Equal(t, huge, out.Page)
}

func TestListRejectsBadFilters(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.list.Execute(ctx, ListInput{ActorID: f.user, Status: "done"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))

	_, err = f.list.Execute(ctx, ListInput{ActorID: f.user, ResourceType: "Invoice"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeUnknownResourceType))

	_, err = f.list.Execute(ctx, ListInput{ActorID: f.user, ActionType: "merge"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))
}

func TestGetHidesOtherUsersActions(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	pa, err := f.submitCreate(t, f.user, resource.TypeField, map[string]any{"name": "Safety"})
	require.NoError(t, err)

	got, err := f.get.Execute(ctx, f.user, false, pa.ID)
	require.NoError(t, err)
	assert.Equal(t, pa.ID, got.ID)

	_, err = f.get.Execute(ctx, f.other, false, pa.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))

	_, err = f.get.Execute(ctx, f.admin, true, pa.ID)
	require.NoError(t, err)
}
