package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/certhub/internal/httperr"
	"github.com/BruksfildServices01/certhub/internal/models"
	"github.com/BruksfildServices01/certhub/internal/testutil"
)

func TestResourceCatalog(t *testing.T) {
	s := newServer(t)
	for _, name := range []string{"Safety", "Quality", "Health"} {
		testutil.SeedField(t, s.db, name)
	}
	target := testutil.SeedField(t, s.db, "Environment")

	w := s.do(t, s.user, http.MethodGet, "/api/resources/fields?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page listData[models.Field]
	decodeData(t, w, &page)
	assert.Len(t, page.Items, 2)
	assert.EqualValues(t, 4, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.Pages)

	// type names are accepted as well as slugs
	w = s.do(t, s.user, http.MethodGet, fmt.Sprintf("/api/resources/Field/%d", target.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got models.Field
	decodeData(t, w, &got)
	assert.Equal(t, "Environment", got.Name)

	w = s.do(t, s.user, http.MethodGet, "/api/resources/fields/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, httperr.CodeResourceNotFound, decode(t, w).ErrorCode)

	w = s.do(t, s.user, http.MethodGet, "/api/resources/invoices", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, httperr.CodeUnknownResourceType, decode(t, w).ErrorCode)
}
