package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/certhub/internal/audit"
	"github.com/BruksfildServices01/certhub/internal/dto"
	"github.com/BruksfildServices01/certhub/internal/httperr"
	"github.com/BruksfildServices01/certhub/internal/httpresp"
	"github.com/BruksfildServices01/certhub/internal/middleware"
	"github.com/BruksfildServices01/certhub/internal/models"
)

// --------- Requests ---------

// UpdateUserRequest is a partial update; absent fields keep their value.
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	Role     *string `json:"role" binding:"omitempty,oneof=user admin"`
}

// --------- Handlers ---------

// ListUsers is admin only. role filters exactly, q matches name or email.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	page, limit := pageQuery(c)
	limit = h.config.PageSize(limit)

	q := h.db.WithContext(c.Request.Context()).Model(&models.User{})

	if role := c.Query("role"); role != "" {
		if role != models.RoleUser && role != models.RoleAdmin {
			httperr.BadRequest(c, httperr.CodeValidation, "role must be user or admin")
			return
		}
		q = q.Where("role = ?", role)
	}

	if search := strings.ToLower(strings.TrimSpace(c.Query("q"))); search != "" {
		like := "%" + search + "%"
		q = q.Where("LOWER(name) LIKE ? OR email LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.FromError(c, errors.Wrap(err, "count users"))
		return
	}

	users := []models.User{}
	if offset, ok := pageOffset(page, limit); ok {
		if err := q.Order("id ASC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
			httperr.FromError(c, errors.Wrap(err, "list users"))
			return
		}
	}

	httpresp.List(c, dto.NewUsers(users), httpresp.NewPagination(total, page, limit))
}

func (h *AuthHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "userId")
	if !ok {
		return
	}

	user, err := h.loadUser(c, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.NewUser(user))
}

func (h *AuthHandler) UpdateUser(c *gin.Context) {
	adminID, _ := middleware.Actor(c)

	id, ok := pathID(c, "userId")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	user, err := h.loadUser(c, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	updates := map[string]any{}
	changed := []string{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, httperr.CodeValidation, "name must not be blank")
			return
		}
		updates["name"] = name
		changed = append(changed, "name")
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			if h.emails != nil && !h.emails.Valid(c.Request.Context(), email) {
				httperr.BadRequest(c, "invalid_email_domain", "email domain does not accept mail")
				return
			}
			updates["email"] = email
			changed = append(changed, "email")
		}
	}

	if req.Role != nil && *req.Role != user.Role {
		// admins cannot demote themselves
		if user.ID == adminID {
			httperr.Forbidden(c, httperr.CodeForbidden, "admins cannot change their own role")
			return
		}
		updates["role"] = *req.Role
		changed = append(changed, "role")
	}

	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.FromError(c, errors.Wrap(err, "hash password"))
			return
		}
		updates["password_hash"] = string(hashed)
		changed = append(changed, "password")
	}

	if len(updates) == 0 {
		httperr.BadRequest(c, httperr.CodeValidation, "nothing to update")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Model(user).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Write(c, httperr.StatusFor(httperr.CodeNameInUse), "email_already_in_use", "email already registered")
			return
		}
		httperr.FromError(c, errors.Wrap(err, "update user"))
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &adminID,
		Action:   audit.ActionUserUpdated,
		Entity:   audit.EntityUser,
		EntityID: &user.ID,
		Metadata: map[string]any{"changed": changed},
	})

	updated, err := h.loadUser(c, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, dto.NewUser(updated))
}

func (h *AuthHandler) loadUser(c *gin.Context, id uint) (*models.User, error) {
	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusinessf(httperr.CodeNotFound, "user %d not found", id)
		}
		return nil, errors.Wrap(err, "load user")
	}
	return &user, nil
}
