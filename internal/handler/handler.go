package handler

import (
	"errors"
	"strconv"

	"github.com/bitfantasy/parttrack/internal/repository"
	"github.com/bitfantasy/parttrack/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Handlers bundles all HTTP handlers.
type Handlers struct {
	Category   *CategoryHandler
	Part       *PartHandler
	BOM        *BOMHandler
	Stock      *StockHandler
	Build      *BuildHandler
	Supplier   *SupplierHandler
	Attachment *AttachmentHandler
}

// NewHandlers creates the handler bundle. rdb may be nil; stock summaries
// are then served uncached.
func NewHandlers(svc *service.Services, rdb *redis.Client) *Handlers {
	cache := newStockCache(rdb)
	return &Handlers{
		Category:   NewCategoryHandler(svc.Category),
		Part:       NewPartHandler(svc.Part, svc.Stock, svc.Allocation, cache),
		BOM:        NewBOMHandler(svc.BOM, svc.Part, svc.Export, cache),
		Stock:      NewStockHandler(svc.Stock, svc.Part, cache),
		Build:      NewBuildHandler(svc.Build, cache),
		Supplier:   NewSupplierHandler(svc.Supplier),
		Attachment: NewAttachmentHandler(svc.Attachment),
	}
}

// Response generic response envelope
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse list response envelope
type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// Pagination pagination info
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func NewPagination(page, pageSize int, total int64) *Pagination {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return &Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      int(total),
		TotalPages: totalPages,
	}
}

// Success success response
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created resource created response
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error error response; the HTTP status is the leading three digits of code.
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest invalid request response
func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

// NotFound missing resource response
func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

// Conflict duplicate resource response
func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

// InternalError server error response
func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// RespondError maps service errors onto HTTP responses. Validation failures
// are client errors; duplicates conflict; an inconsistency detected while
// walking stored data is a server fault.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, repository.ErrDuplicate),
		errors.Is(err, service.ErrDuplicateEdge):
		Conflict(c, err.Error())
	case errors.Is(err, service.ErrSelfReference),
		errors.Is(err, service.ErrRecursiveBom),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrNotBuildable),
		errors.Is(err, service.ErrNotConsumable),
		errors.Is(err, service.ErrInvalidParent):
		BadRequest(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}

// GetUserID returns the authenticated user's ID from the context.
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// GetPagination reads page/page_size query params.
func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}
