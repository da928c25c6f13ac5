package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bitfantasy/parttrack/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const stockCacheTTL = 30 * time.Second

// stockCache caches stock summaries per part in redis. Mutations to stock
// entries, BOM items and builds invalidate the affected part's key; the
// short TTL bounds staleness from anything missed.
type stockCache struct {
	rdb *redis.Client
}

func newStockCache(rdb *redis.Client) *stockCache {
	return &stockCache{rdb: rdb}
}

func (c *stockCache) key(partID string) string {
	return "parttrack:stock:" + partID
}

func (c *stockCache) Get(ctx context.Context, partID string) (*service.StockSummary, bool) {
	if c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, c.key(partID)).Bytes()
	if err != nil {
		return nil, false
	}
	var summary service.StockSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, false
	}
	return &summary, true
}

func (c *stockCache) Set(ctx context.Context, partID string, summary *service.StockSummary) {
	if c.rdb == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, c.key(partID), raw, stockCacheTTL)
}

func (c *stockCache) Invalidate(ctx context.Context, partIDs ...string) {
	if c.rdb == nil || len(partIDs) == 0 {
		return
	}
	keys := make([]string, len(partIDs))
	for i, id := range partIDs {
		keys[i] = c.key(id)
	}
	c.rdb.Del(ctx, keys...)
}

// StockHandler stock entry endpoints
type StockHandler struct {
	svc   *service.StockService
	parts *service.PartService
	cache *stockCache
}

func NewStockHandler(svc *service.StockService, parts *service.PartService, cache *stockCache) *StockHandler {
	return &StockHandler{svc: svc, parts: parts, cache: cache}
}

// ListEntries lists a part's stock entries.
func (h *StockHandler) ListEntries(c *gin.Context) {
	partID := c.Param("id")
	if _, err := h.parts.Get(c.Request.Context(), partID); err != nil {
		RespondError(c, err)
		return
	}

	entries, err := h.svc.Entries(c.Request.Context(), partID)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, entries)
}

// AddEntry records new stock of a part.
func (h *StockHandler) AddEntry(c *gin.Context) {
	partID := c.Param("id")
	if _, err := h.parts.Get(c.Request.Context(), partID); err != nil {
		RespondError(c, err)
		return
	}

	var req service.AddStockEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	entry, err := h.svc.AddEntry(c.Request.Context(), partID, &req)
	if err != nil {
		RespondError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), partID)
	Created(c, entry)
}

// UpdateEntry modifies a stock entry.
func (h *StockHandler) UpdateEntry(c *gin.Context) {
	var req service.UpdateStockEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	entry, err := h.svc.UpdateEntry(c.Request.Context(), c.Param("entryId"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), entry.PartID)
	Success(c, entry)
}

// DeleteEntry removes a stock entry.
func (h *StockHandler) DeleteEntry(c *gin.Context) {
	entryID := c.Param("entryId")

	entry, err := h.svc.Entry(c.Request.Context(), entryID)
	if err != nil {
		RespondError(c, err)
		return
	}

	if err := h.svc.DeleteEntry(c.Request.Context(), entryID); err != nil {
		RespondError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), entry.PartID)
	Success(c, nil)
}
