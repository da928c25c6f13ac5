package handler

import (
	"github.com/bitfantasy/parttrack/internal/service"
	"github.com/gin-gonic/gin"
)

// PartHandler part endpoints
type PartHandler struct {
	svc   *service.PartService
	stock *service.StockService
	alloc *service.AllocationService
	cache *stockCache
}

func NewPartHandler(svc *service.PartService, stock *service.StockService, alloc *service.AllocationService, cache *stockCache) *PartHandler {
	return &PartHandler{svc: svc, stock: stock, alloc: alloc, cache: cache}
}

// List lists parts with optional filters.
func (h *PartHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := map[string]interface{}{
		"keyword":     c.Query("keyword"),
		"category_id": c.Query("category_id"),
		"ipn":         c.Query("ipn"),
		"buildable":   c.Query("buildable"),
		"consumable":  c.Query("consumable"),
	}

	parts, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, ListResponse{
		Items:      parts,
		Pagination: NewPagination(page, pageSize, total),
	})
}

// Get returns a part.
func (h *PartHandler) Get(c *gin.Context) {
	part, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, part)
}

// Stock returns the part's stock summary: totals, allocation, the number of
// units that could be built from available sub-part stock, and a low stock
// flag. Summaries are cached briefly.
func (h *PartHandler) Stock(c *gin.Context) {
	id := c.Param("id")

	if summary, ok := h.cache.Get(c.Request.Context(), id); ok {
		Success(c, summary)
		return
	}

	part, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}

	summary, err := h.stock.Summary(c.Request.Context(), part)
	if err != nil {
		RespondError(c, err)
		return
	}

	h.cache.Set(c.Request.Context(), id, summary)
	Success(c, summary)
}

// Allocations lists the build allocations consuming this part.
func (h *PartHandler) Allocations(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.svc.Get(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}

	allocations, err := h.alloc.BuildAllocations(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}

	total := 0
	for i := range allocations {
		total += allocations[i].Quantity
	}

	Success(c, gin.H{
		"allocations":     allocations,
		"total_allocated": total,
	})
}

// Create creates a part.
func (h *PartHandler) Create(c *gin.Context) {
	var req service.CreatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	part, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, part)
}

// Update modifies a part.
func (h *PartHandler) Update(c *gin.Context) {
	var req service.UpdatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	part, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, part)
}

// Delete removes a part along with its BOM edges, supplier parts,
// attachments and stock entries.
func (h *PartHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	h.cache.Invalidate(c.Request.Context(), id)
	Success(c, nil)
}
