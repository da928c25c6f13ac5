package handler

import (
	"github.com/bitfantasy/parttrack/internal/service"
	"github.com/gin-gonic/gin"
)

// CategoryHandler part category endpoints
type CategoryHandler struct {
	svc *service.CategoryService
}

func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List lists all categories.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.svc.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, categories)
}

// Get returns a category with its derived counts.
func (h *CategoryHandler) Get(c *gin.Context) {
	id := c.Param("id")

	category, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}

	partCount, err := h.svc.PartCount(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	hasParts, err := h.svc.HasParts(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{
		"category":   category,
		"part_count": partCount,
		"has_parts":  hasParts,
	})
}

// Parts lists the parts directly assigned to a category.
func (h *CategoryHandler) Parts(c *gin.Context) {
	parts, err := h.svc.Parts(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, parts)
}

// Create creates a category.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req service.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	category, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, category)
}

// Update modifies a category.
func (h *CategoryHandler) Update(c *gin.Context) {
	var req service.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	category, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, category)
}

// Delete removes a category. Its parts and child categories move up to the
// deleted category's parent.
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, nil)
}
