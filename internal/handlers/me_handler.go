package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/certhub/internal/domain/pendingaction"
	"github.com/BruksfildServices01/certhub/internal/dto"
	"github.com/BruksfildServices01/certhub/internal/httperr"
	"github.com/BruksfildServices01/certhub/internal/httpresp"
	"github.com/BruksfildServices01/certhub/internal/middleware"
	"github.com/BruksfildServices01/certhub/internal/models"
)

type MeHandler struct {
	db   *gorm.DB
	repo domain.Repository
}

func NewMeHandler(db *gorm.DB, repo domain.Repository) *MeHandler {
	return &MeHandler{db: db, repo: repo}
}

// GetMe returns the caller and a count of their requests per status.
func (h *MeHandler) GetMe(c *gin.Context) {
	userID, _ := middleware.Actor(c)

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "user_not_found", "account no longer exists")
			return
		}
		httperr.FromError(c, errors.Wrap(err, "load user"))
		return
	}

	counts, err := h.repo.CountByStatus(c.Request.Context(), user.ID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	requests := gin.H{}
	for _, st := range []domain.Status{domain.StatusPending, domain.StatusApproved, domain.StatusRejected} {
		requests[string(st)] = counts[st]
	}

	httpresp.OK(c, gin.H{
		"user":     dto.NewUser(&user),
		"requests": requests,
	})
}
