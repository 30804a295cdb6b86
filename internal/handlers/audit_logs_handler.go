package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/certhub/internal/config"
	"github.com/BruksfildServices01/certhub/internal/httperr"
	"github.com/BruksfildServices01/certhub/internal/httpresp"
	"github.com/BruksfildServices01/certhub/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuditLogsHandler(db *gorm.DB, cfg *config.Config) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, config: cfg}
}

// List is admin only. from/to are inclusive calendar days (YYYY-MM-DD).
func (h *AuditLogsHandler) List(c *gin.Context) {
	page, limit := pageQuery(c)
	limit = h.config.PageSize(limit)

	actorID, ok := queryID(c, "actorId")
	if !ok {
		return
	}

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if actorID != nil {
		q = q.Where("actor_id = ?", *actorID)
	}

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeValidation, "from must be YYYY-MM-DD")
			return
		}
		q = q.Where("created_at >= ?", from)
	}

	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeValidation, "to must be YYYY-MM-DD")
			return
		}
		q = q.Where("created_at < ?", to.Add(24*time.Hour))
	}

	// --------------------------------------------------
	// Total
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.FromError(c, errors.Wrap(err, "count audit logs"))
		return
	}

	// --------------------------------------------------
	// Page
	// --------------------------------------------------

	logs := []models.AuditLog{}
	offset, ok := pageOffset(page, limit)
	if !ok {
		httpresp.List(c, logs, httpresp.NewPagination(total, page, limit))
		return
	}
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.FromError(c, errors.Wrap(err, "list audit logs"))
		return
	}

	httpresp.List(c, logs, httpresp.NewPagination(total, page, limit))
}
