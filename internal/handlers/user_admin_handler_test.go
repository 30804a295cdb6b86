package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/certhub/internal/dto"
	"github.com/BruksfildServices01/certhub/internal/httperr"
	"github.com/BruksfildServices01/certhub/internal/models"
)

func userPath(id uint) string {
	return fmt.Sprintf("/api/admin/users/%d", id)
}

func TestListUsers(t *testing.T) {
	s := newServer(t)

	w := s.do(t, s.user, http.MethodGet, "/api/admin/users", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, s.admin, http.MethodGet, "/api/admin/users?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page listData[dto.UserDTO]
	decodeData(t, w, &page)
	require.Len(t, page.Items, 2)
	assert.EqualValues(t, 3, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.Pages)
	assert.Equal(t, s.user.ID, page.Items[0].ID)
	assert.NotContains(t, w.Body.String(), "password")

	w = s.do(t, s.admin, http.MethodGet, "/api/admin/users?role=admin", nil)
	var admins listData[dto.UserDTO]
	decodeData(t, w, &admins)
	require.Len(t, admins.Items, 1)
	assert.Equal(t, s.admin.ID, admins.Items[0].ID)

	w = s.do(t, s.admin, http.MethodGet, "/api/admin/users?q=OTHER", nil)
	var found listData[dto.UserDTO]
	decodeData(t, w, &found)
	require.Len(t, found.Items, 1)
	assert.Equal(t, s.other.ID, found.Items[0].ID)

	w = s.do(t, s.admin, http.MethodGet, "/api/admin/users?role=owner", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUser(t *testing.T) {
	s := newServer(t)

	w := s.do(t, s.admin, http.MethodGet, userPath(s.other.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got dto.UserDTO
	decodeData(t, w, &got)
	assert.Equal(t, "other@example.com", got.Email)
	assert.Equal(t, models.RoleUser, got.Role)

	w = s.do(t, s.admin, http.MethodGet, userPath(9999), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, httperr.CodeNotFound, decode(t, w).ErrorCode)

	w = s.do(t, s.admin, http.MethodGet, "/api/admin/users/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateUser(t *testing.T) {
	s := newServer(t)

	w := s.do(t, s.user, http.MethodPatch, userPath(s.other.ID), map[string]any{"name": "Nope"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, s.admin, http.MethodPatch, userPath(s.other.ID), map[string]any{
		"name": "  Olivia Other ", "email": "Olivia@Example.com", "role": "admin", "password": "another-secret",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got dto.UserDTO
	decodeData(t, w, &got)
	assert.Equal(t, "Olivia Other", got.Name)
	assert.Equal(t, "olivia@example.com", got.Email)
	assert.Equal(t, models.RoleAdmin, got.Role)

	var stored models.User
	require.NoError(t, s.db.First(&stored, s.other.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("another-secret")))

	w = s.do(t, s.admin, http.MethodPatch, userPath(s.user.ID), map[string]any{"email": "admin@example.com"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email_already_in_use", decode(t, w).ErrorCode)

	w = s.do(t, s.admin, http.MethodPatch, userPath(s.user.ID), map[string]any{"email": "user@nomail.test"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_email_domain", decode(t, w).ErrorCode)

	w = s.do(t, s.admin, http.MethodPatch, userPath(s.admin.ID), map[string]any{"role": "user"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// renaming yourself is fine
	w = s.do(t, s.admin, http.MethodPatch, userPath(s.admin.ID), map[string]any{"name": "Head Admin", "role": "admin"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, s.admin, http.MethodPatch, userPath(s.user.ID), map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, s.admin, http.MethodPatch, userPath(s.user.ID), map[string]any{"password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, s.admin, http.MethodPatch, userPath(9999), map[string]any{"name": "Ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
