package handler

import (
	"strconv"

	"github.com/bitfantasy/parttrack/internal/service"
	"github.com/gin-gonic/gin"
)

// SupplierHandler supplier catalog endpoints
type SupplierHandler struct {
	svc *service.SupplierService
}

func NewSupplierHandler(svc *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{svc: svc}
}

// ListCompanies lists supplier companies.
func (h *SupplierHandler) ListCompanies(c *gin.Context) {
	companies, err := h.svc.ListCompanies(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, companies)
}

// GetCompany returns a supplier company.
func (h *SupplierHandler) GetCompany(c *gin.Context) {
	company, err := h.svc.GetCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, company)
}

// CreateCompany creates a supplier company.
func (h *SupplierHandler) CreateCompany(c *gin.Context) {
	var req service.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	company, err := h.svc.CreateCompany(c.Request.Context(), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, company)
}

// SupplierParts lists the supplier offerings of a part.
func (h *SupplierHandler) SupplierParts(c *gin.Context) {
	parts, err := h.svc.SupplierPartsFor(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, parts)
}

// CreateSupplierPart records a supplier offering.
func (h *SupplierHandler) GetSupplierPart(c *gin.Context) {
	sp, err := h.svc.GetSupplierPart(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, sp)
}

func (h *SupplierHandler) CreateSupplierPart(c *gin.Context) {
	var req service.CreateSupplierPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sp, err := h.svc.CreateSupplierPart(c.Request.Context(), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, sp)
}

// PriceBreaks lists a supplier part's price breaks.
func (h *SupplierHandler) PriceBreaks(c *gin.Context) {
	breaks, err := h.svc.PriceBreaks(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, breaks)
}

// CreatePriceBreak adds a price break to a supplier part.
func (h *SupplierHandler) CreatePriceBreak(c *gin.Context) {
	var req service.CreatePriceBreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	pb, err := h.svc.CreatePriceBreak(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, pb)
}

// Pricing quotes an order of the given quantity from a supplier part.
func (h *SupplierHandler) Pricing(c *gin.Context) {
	quantity, err := strconv.Atoi(c.DefaultQuery("quantity", "1"))
	if err != nil {
		BadRequest(c, "Invalid quantity")
		return
	}

	id := c.Param("id")
	sp, err := h.svc.GetSupplierPart(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}

	unit, err := h.svc.UnitPrice(c.Request.Context(), id, quantity)
	if err != nil {
		RespondError(c, err)
		return
	}
	order, err := h.svc.OrderPrice(c.Request.Context(), id, quantity)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{
		"quantity":       quantity,
		"order_quantity": h.svc.OrderQuantity(sp, quantity),
		"unit_price":     unit,
		"order_price":    order,
	})
}
