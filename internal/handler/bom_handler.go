package handler

import (
	"github.com/bitfantasy/parttrack/internal/service"
	"github.com/gin-gonic/gin"
)

// BOMHandler BOM graph endpoints
type BOMHandler struct {
	svc    *service.BOMService
	parts  *service.PartService
	export *service.ExportService
	cache  *stockCache
}

func NewBOMHandler(svc *service.BOMService, parts *service.PartService, export *service.ExportService, cache *stockCache) *BOMHandler {
	return &BOMHandler{svc: svc, parts: parts, export: export, cache: cache}
}

// Items lists a part's direct BOM items with their sub-parts.
func (h *BOMHandler) Items(c *gin.Context) {
	partID := c.Param("id")

	items, err := h.svc.Items(c.Request.Context(), partID)
	if err != nil {
		RespondError(c, err)
		return
	}
	count, err := h.svc.BomCount(c.Request.Context(), partID)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{
		"items":     items,
		"bom_count": count,
	})
}

// UsedIn lists the BOM items referencing this part as a sub-part.
func (h *BOMHandler) UsedIn(c *gin.Context) {
	partID := c.Param("id")

	items, err := h.svc.UsedIn(c.Request.Context(), partID)
	if err != nil {
		RespondError(c, err)
		return
	}
	count, err := h.svc.UsedInCount(c.Request.Context(), partID)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{
		"items":         items,
		"used_in_count": count,
	})
}

// AddItem adds an edge to a part's BOM.
func (h *BOMHandler) AddItem(c *gin.Context) {
	partID := c.Param("id")

	var req service.AddBomItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.svc.AddItem(c.Request.Context(), partID, &req)
	if err != nil {
		RespondError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), partID)
	Created(c, item)
}

// UpdateItem modifies a BOM item's quantity or note.
func (h *BOMHandler) UpdateItem(c *gin.Context) {
	var req service.UpdateBomItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.svc.UpdateItem(c.Request.Context(), c.Param("itemId"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), item.PartID)
	Success(c, item)
}

// DeleteItem removes a BOM item.
func (h *BOMHandler) DeleteItem(c *gin.Context) {
	itemID := c.Param("itemId")

	item, err := h.svc.GetItem(c.Request.Context(), itemID)
	if err != nil {
		RespondError(c, err)
		return
	}

	if err := h.svc.DeleteItem(c.Request.Context(), itemID); err != nil {
		RespondError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), item.PartID)
	Success(c, nil)
}

// Export renders the part's BOM as a table. format=csv and format=xlsx
// download a file; the default returns the table as JSON.
func (h *BOMHandler) Export(c *gin.Context) {
	part, err := h.parts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}

	switch c.Query("format") {
	case "csv":
		csv, err := h.export.CSV(c.Request.Context(), part)
		if err != nil {
			RespondError(c, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename=\"BOM_"+part.Name+".csv\"")
		c.Data(200, "text/csv", []byte(csv))

	case "xlsx":
		f, filename, err := h.export.XLSX(c.Request.Context(), part)
		if err != nil {
			RespondError(c, err)
			return
		}
		defer f.Close()

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
		c.Header("Content-Transfer-Encoding", "binary")
		if err := f.Write(c.Writer); err != nil {
			InternalError(c, "write excel: "+err.Error())
		}

	default:
		table, err := h.export.Table(c.Request.Context(), part)
		if err != nil {
			RespondError(c, err)
			return
		}
		Success(c, table)
	}
}
