package handler

import (
	"net/http"

	"github.com/bitfantasy/parttrack/internal/config"
	"github.com/bitfantasy/parttrack/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// RegisterRoutes mounts the API.
func RegisterRoutes(r *gin.Engine, h *Handlers, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": Version})
	})

	v1 := r.Group("/api/v1")
	authorized := v1.Group("")
	authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		categories := authorized.Group("/categories")
		{
			categories.GET("", h.Category.List)
			categories.POST("", h.Category.Create)
			categories.GET("/:id", h.Category.Get)
			categories.PUT("/:id", h.Category.Update)
			categories.DELETE("/:id", h.Category.Delete)
			categories.GET("/:id/parts", h.Category.Parts)
		}

		parts := authorized.Group("/parts")
		{
			parts.GET("", h.Part.List)
			parts.POST("", h.Part.Create)
			parts.GET("/:id", h.Part.Get)
			parts.PUT("/:id", h.Part.Update)
			parts.DELETE("/:id", h.Part.Delete)
			parts.GET("/:id/stock", h.Part.Stock)
			parts.GET("/:id/allocations", h.Part.Allocations)

			// BOM graph
			parts.GET("/:id/bom", h.BOM.Items)
			parts.POST("/:id/bom", h.BOM.AddItem)
			parts.GET("/:id/used-in", h.BOM.UsedIn)
			parts.GET("/:id/bom/export", h.BOM.Export)

			// Stock ledger
			parts.GET("/:id/stock-entries", h.Stock.ListEntries)
			parts.POST("/:id/stock-entries", h.Stock.AddEntry)

			// Supplier offerings
			parts.GET("/:id/suppliers", h.Supplier.SupplierParts)

			// Attachments
			parts.GET("/:id/attachments", h.Attachment.List)
			parts.POST("/:id/attachments", h.Attachment.Upload)
		}

		bomItems := authorized.Group("/bom-items")
		{
			bomItems.PUT("/:itemId", h.BOM.UpdateItem)
			bomItems.DELETE("/:itemId", h.BOM.DeleteItem)
		}

		stockEntries := authorized.Group("/stock-entries")
		{
			stockEntries.PUT("/:entryId", h.Stock.UpdateEntry)
			stockEntries.DELETE("/:entryId", h.Stock.DeleteEntry)
		}

		builds := authorized.Group("/builds")
		{
			builds.GET("", h.Build.List)
			builds.POST("", h.Build.Create)
			builds.GET("/:id", h.Build.Get)
			builds.POST("/:id/start", h.Build.Start)
			builds.POST("/:id/complete", h.Build.Complete)
			builds.POST("/:id/cancel", h.Build.Cancel)
		}

		companies := authorized.Group("/companies")
		{
			companies.GET("", h.Supplier.ListCompanies)
			companies.POST("", h.Supplier.CreateCompany)
			companies.GET("/:id", h.Supplier.GetCompany)
		}

		supplierParts := authorized.Group("/supplier-parts")
		{
			supplierParts.POST("", h.Supplier.CreateSupplierPart)
			supplierParts.GET("/:id", h.Supplier.GetSupplierPart)
			supplierParts.GET("/:id/price-breaks", h.Supplier.PriceBreaks)
			supplierParts.POST("/:id/price-breaks", h.Supplier.CreatePriceBreak)
			supplierParts.GET("/:id/pricing", h.Supplier.Pricing)
		}

		attachments := authorized.Group("/attachments")
		{
			attachments.GET("/:attachmentId/download", h.Attachment.Download)
			attachments.DELETE("/:attachmentId", h.Attachment.Delete)
		}
	}
}
