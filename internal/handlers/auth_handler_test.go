package handlers

import (
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/certhub/internal/dto"
	"github.com/BruksfildServices01/certhub/internal/models"
)

func TestLogin(t *testing.T) {
	s := newServer(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, s.db.Model(s.user).Update("password_hash", string(hash)).Error)

	w := s.do(t, nil, http.MethodPost, "/api/auth/login", map[string]any{"email": "USER@example.com", "password": "correct horse"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		User  dto.UserDTO `json:"user"`
		Token string      `json:"token"`
	}
	decodeData(t, w, &out)
	assert.Equal(t, s.user.ID, out.User.ID)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(out.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.EqualValues(t, s.user.ID, claims["sub"])
	assert.Equal(t, models.RoleUser, claims["role"])

	w = s.do(t, nil, http.MethodPost, "/api/auth/login", map[string]any{"email": "user@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", decode(t, w).ErrorCode)

	w = s.do(t, nil, http.MethodPost, "/api/auth/login", map[string]any{"email": "nobody@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateUser(t *testing.T) {
	s := newServer(t)

	body := map[string]any{"name": "New Person", "email": "new@example.com", "password": "s3cret-pass"}

	w := s.do(t, s.user, http.MethodPost, "/api/admin/users", body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, s.admin, http.MethodPost, "/api/admin/users", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created dto.UserDTO
	decodeData(t, w, &created)
	assert.Equal(t, "new@example.com", created.Email)
	assert.Equal(t, models.RoleUser, created.Role)

	var stored models.User
	require.NoError(t, s.db.First(&stored, created.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")))

	w = s.do(t, s.admin, http.MethodPost, "/api/admin/users", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email_already_in_use", decode(t, w).ErrorCode)

	w = s.do(t, s.admin, http.MethodPost, "/api/admin/users",
		map[string]any{"name": "X", "email": "x@unknown.invalid", "password": "s3cret-pass"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_email_domain", decode(t, w).ErrorCode)

	w = s.do(t, s.admin, http.MethodPost, "/api/admin/users",
		map[string]any{"name": "X", "email": "y@example.com", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
