package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/certhub/internal/domain/pendingaction"
	"github.com/BruksfildServices01/certhub/internal/httperr"
	"github.com/BruksfildServices01/certhub/internal/httpresp"
	"github.com/BruksfildServices01/certhub/internal/middleware"
	"github.com/BruksfildServices01/certhub/internal/models"
	ucPending "github.com/BruksfildServices01/certhub/internal/usecase/pendingaction"
)

// AdminPendingActionHandler serves the review queue. Routes are mounted
// behind middleware.AdminOnly.
type AdminPendingActionHandler struct {
	list   *ucPending.ListPendingActions
	get    *ucPending.GetPendingAction
	review *ucPending.ReviewPendingAction
}

func NewAdminPendingActionHandler(
	list *ucPending.ListPendingActions,
	get *ucPending.GetPendingAction,
	review *ucPending.ReviewPendingAction,
) *AdminPendingActionHandler {
	return &AdminPendingActionHandler{
		list:   list,
		get:    get,
		review: review,
	}
}

type ReviewRequest struct {
	RejectionReason string `json:"rejectionReason" binding:"max=1000"`
}

func (h *AdminPendingActionHandler) List(c *gin.Context) {
	adminID, _ := middleware.Actor(c)
	page, limit := pageQuery(c)

	requestedBy, ok := queryID(c, "requestedBy")
	if !ok {
		return
	}
	resourceID, ok := queryID(c, "resourceId")
	if !ok {
		return
	}

	out, err := h.list.Execute(c.Request.Context(), ucPending.ListInput{
		ActorID:      adminID,
		Privileged:   true,
		RequestedBy:  requestedBy,
		ResourceType: c.Query("resourceType"),
		ResourceID:   resourceID,
		ActionType:   c.Query("actionType"),
		Status:       c.Query("status"),
		Page:         page,
		PageSize:     limit,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, out.Items, httpresp.NewPagination(out.Total, out.Page, out.PageSize))
}

func (h *AdminPendingActionHandler) Get(c *gin.Context) {
	adminID, _ := middleware.Actor(c)

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	pa, err := h.get.Execute(c.Request.Context(), adminID, true, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, pa)
}

// Review handles PUT /admin/pending-actions/:id/:decision. A failed approval
// still answers 200 with the action in status rejected.
func (h *AdminPendingActionHandler) Review(c *gin.Context) {
	adminID, _ := middleware.Actor(c)

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req ReviewRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, httperr.CodeValidation, "invalid request body")
			return
		}
	}

	pa, err := h.review.Execute(c.Request.Context(), ucPending.ReviewInput{
		ReviewerID:      adminID,
		ActionID:        id,
		Decision:        c.Param("decision"),
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpresp.Envelope{
		Success: true,
		Message: reviewMessage(pa),
		Data:    pa,
	})
}

func reviewMessage(pa *models.PendingAction) string {
	if pa.Status == string(domain.StatusApproved) {
		return "pending action approved"
	}
	return "pending action rejected"
}
