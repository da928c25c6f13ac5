package handler

import (
	"context"

	"github.com/bitfantasy/parttrack/internal/service"
	"github.com/gin-gonic/gin"
)

// BuildHandler build order endpoints
type BuildHandler struct {
	svc   *service.BuildService
	cache *stockCache
}

func NewBuildHandler(svc *service.BuildService, cache *stockCache) *BuildHandler {
	return &BuildHandler{svc: svc, cache: cache}
}

// List lists build orders.
func (h *BuildHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := map[string]interface{}{
		"part_id": c.Query("part_id"),
		"status":  c.Query("status"),
	}

	builds, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, ListResponse{
		Items:      builds,
		Pagination: NewPagination(page, pageSize, total),
	})
}

// Get returns a build order.
func (h *BuildHandler) Get(c *gin.Context) {
	build, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, build)
}

// Create opens a build order. The new allocation changes the available
// stock of every sub-part in the built part's BOM.
func (h *BuildHandler) Create(c *gin.Context) {
	var req service.CreateBuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	build, err := h.svc.Create(c.Request.Context(), &req, GetUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	h.invalidateFor(c.Request.Context(), build.PartID)
	Created(c, build)
}

// Start moves a build into progress.
func (h *BuildHandler) Start(c *gin.Context) {
	build, err := h.svc.Start(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, build)
}

// Complete finishes a build, releasing its allocations.
func (h *BuildHandler) Complete(c *gin.Context) {
	build, err := h.svc.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	h.invalidateFor(c.Request.Context(), build.PartID)
	Success(c, build)
}

// Cancel abandons a build, releasing its allocations.
func (h *BuildHandler) Cancel(c *gin.Context) {
	build, err := h.svc.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	h.invalidateFor(c.Request.Context(), build.PartID)
	Success(c, build)
}

// invalidateFor drops cached summaries affected by a build change: the
// built part and, via TTL expiry, its sub-parts. Resolving the full BOM
// here is not worth it against a 30 second cache window.
func (h *BuildHandler) invalidateFor(ctx context.Context, partID string) {
	h.cache.Invalidate(ctx, partID)
}
