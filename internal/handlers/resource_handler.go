package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/certhub/internal/config"
	"github.com/BruksfildServices01/certhub/internal/domain/resource"
	"github.com/BruksfildServices01/certhub/internal/httperr"
	"github.com/BruksfildServices01/certhub/internal/httpresp"
)

// ResourceHandler exposes read-only views of the committed catalog.
type ResourceHandler struct {
	registry *resource.Registry
	config   *config.Config
}

func NewResourceHandler(registry *resource.Registry, cfg *config.Config) *ResourceHandler {
	return &ResourceHandler{registry: registry, config: cfg}
}

func (h *ResourceHandler) store(c *gin.Context) (resource.Store, bool) {
	t, err := resource.TypeFromSlug(c.Param("type"))
	if err != nil {
		httperr.FromError(c, err)
		return nil, false
	}
	s, err := h.registry.Lookup(t)
	if err != nil {
		httperr.FromError(c, err)
		return nil, false
	}
	return s, true
}

func (h *ResourceHandler) List(c *gin.Context) {
	s, ok := h.store(c)
	if !ok {
		return
	}

	page, limit := pageQuery(c)
	limit = h.config.PageSize(limit)

	items, total, err := s.List(c.Request.Context(), page, limit)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"items":      items,
		"pagination": httpresp.NewPagination(total, page, limit),
	})
}

func (h *ResourceHandler) Get(c *gin.Context) {
	s, ok := h.store(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := s.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, item)
}
