package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/certhub/internal/audit"
	"github.com/BruksfildServices01/certhub/internal/config"
	"github.com/BruksfildServices01/certhub/internal/dto"
	"github.com/BruksfildServices01/certhub/internal/httperr"
	"github.com/BruksfildServices01/certhub/internal/httpresp"
	"github.com/BruksfildServices01/certhub/internal/middleware"
	"github.com/BruksfildServices01/certhub/internal/models"
	"github.com/BruksfildServices01/certhub/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	emails *validators.EmailDomainChecker
	audit  *audit.Dispatcher
}

func NewAuthHandler(
	db *gorm.DB,
	cfg *config.Config,
	emails *validators.EmailDomainChecker,
	audit *audit.Dispatcher,
) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, emails: emails, audit: audit}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "invalid email or password")
			return
		}
		httperr.FromError(c, errors.Wrap(err, "load user"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "invalid email or password")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.FromError(c, errors.Wrap(err, "sign token"))
		return
	}

	httpresp.OK(c, gin.H{
		"user":  dto.NewUser(&user),
		"token": token,
	})
}

// CreateUser registers an account. Admin only.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	adminID, _ := middleware.Actor(c)

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if h.emails != nil && !h.emails.Valid(c.Request.Context(), email) {
		httperr.BadRequest(c, "invalid_email_domain", "email domain does not accept mail")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.FromError(c, errors.Wrap(err, "hash password"))
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Write(c, httperr.StatusFor(httperr.CodeNameInUse), "email_already_in_use", "email already registered")
			return
		}
		httperr.FromError(c, errors.Wrap(err, "create user"))
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &adminID,
		Action:   audit.ActionUserAdded,
		Entity:   audit.EntityUser,
		EntityID: &user.ID,
		Metadata: map[string]any{"email": user.Email, "role": user.Role},
	})

	httpresp.Created(c, "user created", dto.NewUser(&user))
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  now.Add(h.config.TokenTTL).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
