package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/certhub/internal/domain/resource"
	"github.com/BruksfildServices01/certhub/internal/dto"
	"github.com/BruksfildServices01/certhub/internal/httperr"
	"github.com/BruksfildServices01/certhub/internal/httpresp"
	"github.com/BruksfildServices01/certhub/internal/middleware"
	ucPending "github.com/BruksfildServices01/certhub/internal/usecase/pendingaction"
)

// ======================================================
// HANDLER
// ======================================================

// PendingActionHandler serves the requester side of the workflow.
type PendingActionHandler struct {
	submit *ucPending.SubmitPendingAction
	list   *ucPending.ListPendingActions
	get    *ucPending.GetPendingAction
	cancel *ucPending.CancelPendingAction
}

func NewPendingActionHandler(
	submit *ucPending.SubmitPendingAction,
	list *ucPending.ListPendingActions,
	get *ucPending.GetPendingAction,
	cancel *ucPending.CancelPendingAction,
) *PendingActionHandler {
	return &PendingActionHandler{
		submit: submit,
		list:   list,
		get:    get,
		cancel: cancel,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SubmitPendingActionRequest struct {
	ActionType   string          `json:"actionType"`
	ResourceType string          `json:"resourceType"`
	ResourceID   *uint           `json:"resourceId"`
	Data         json.RawMessage `json:"data"`
}

// ======================================================
// SUBMIT
// ======================================================

func (h *PendingActionHandler) Submit(c *gin.Context) {
	actorID, _ := middleware.Actor(c)

	var req SubmitPendingActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "invalid request body")
		return
	}

	h.execSubmit(c, ucPending.SubmitInput{
		ActorID:      actorID,
		ActionType:   req.ActionType,
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
		Data:         req.Data,
	})
}

// SubmitFor serves the per-resource request routes. The body is the resource
// payload itself (create) or a patch (update); delete takes no body.
func (h *PendingActionHandler) SubmitFor(t resource.Type, op resource.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID, _ := middleware.Actor(c)

		in := ucPending.SubmitInput{
			ActorID:      actorID,
			ActionType:   string(op),
			ResourceType: string(t),
		}

		if op != resource.OpCreate {
			id, ok := pathID(c, "id")
			if !ok {
				return
			}
			in.ResourceID = &id
		}

		if op != resource.OpDelete {
			body, err := c.GetRawData()
			if err != nil {
				httperr.BadRequest(c, httperr.CodeValidation, "unreadable request body")
				return
			}
			in.Data = body
		}

		h.execSubmit(c, in)
	}
}

func (h *PendingActionHandler) execSubmit(c *gin.Context, in ucPending.SubmitInput) {
	pa, err := h.submit.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, "request submitted for approval", dto.NewPendingActionSummary(*pa))
}

// ======================================================
// LIST / GET (own)
// ======================================================

func (h *PendingActionHandler) ListMine(c *gin.Context) {
	actorID, _ := middleware.Actor(c)
	page, limit := pageQuery(c)

	out, err := h.list.Execute(c.Request.Context(), ucPending.ListInput{
		ActorID:      actorID,
		ResourceType: c.Query("resourceType"),
		ActionType:   c.Query("actionType"),
		Status:       c.Query("status"),
		Page:         page,
		PageSize:     limit,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c,
		dto.NewPendingActionSummaries(out.Items),
		httpresp.NewPagination(out.Total, out.Page, out.PageSize),
	)
}

func (h *PendingActionHandler) GetMine(c *gin.Context) {
	actorID, _ := middleware.Actor(c)

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	pa, err := h.get.Execute(c.Request.Context(), actorID, false, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, pa)
}

// ======================================================
// CANCEL
// ======================================================

func (h *PendingActionHandler) Cancel(c *gin.Context) {
	actorID, _ := middleware.Actor(c)

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.cancel.Execute(c.Request.Context(), actorID, id); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Message(c, "pending action cancelled")
}
