package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bitfantasy/parttrack/internal/model/entity"
)

// StockService derives stock quantities for a part from the stock ledger,
// the allocation tracker and the BOM graph. All results are computed fresh
// on every call; callers that need caching layer it outside, keyed by part
// ID, and invalidate on any BOM or ledger mutation touching the part.
type StockService struct {
	ledger StockLedger
	bom    BomStore
	alloc  *AllocationService
}

func NewStockService(ledger StockLedger, bom BomStore, alloc *AllocationService) *StockService {
	return &StockService{ledger: ledger, bom: bom, alloc: alloc}
}

// TotalStock sums the quantities of the part's in-stock ledger entries.
// Zero if there are none.
func (s *StockService) TotalStock(ctx context.Context, partID string) (int, error) {
	entries, err := s.ledger.EntriesFor(ctx, partID)
	if err != nil {
		return 0, fmt.Errorf("load stock entries: %w", err)
	}
	total := 0
	for _, entry := range entries {
		if entry.InStock {
			total += entry.Quantity
		}
	}
	return total, nil
}

// AvailableStock is total stock minus the quantity allocated to active
// builds, clamped at zero. Over-allocation is never reported as an error
// here; surfacing it is caller policy.
func (s *StockService) AvailableStock(ctx context.Context, partID string) (int, error) {
	total, err := s.TotalStock(ctx, partID)
	if err != nil {
		return 0, err
	}
	allocated, err := s.alloc.AllocationCount(ctx, partID)
	if err != nil {
		return 0, err
	}
	available := total - allocated
	if available < 0 {
		available = 0
	}
	return available, nil
}

// CanBuild returns how many units of the part can be assembled from the
// available stock of its direct sub-parts: the minimum of
// floor(available / quantity) across BOM items. A part without a BOM
// degenerates to its own available stock. Items with a non-positive
// quantity cannot be created, but if one is encountered anyway it is
// skipped as a non-constraining term rather than failing the whole
// computation.
func (s *StockService) CanBuild(ctx context.Context, partID string) (int, error) {
	items, err := s.bom.ItemsFor(ctx, partID)
	if err != nil {
		return 0, fmt.Errorf("load BOM: %w", err)
	}
	if len(items) == 0 {
		return s.AvailableStock(ctx, partID)
	}

	total := -1
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		available, err := s.AvailableStock(ctx, item.SubPartID)
		if err != nil {
			return 0, err
		}
		n := available / item.Quantity
		if total < 0 || n < total {
			total = n
		}
	}
	if total < 0 {
		total = 0
	}
	return total, nil
}

// StockSummary is the per-part stock snapshot served to clients.
type StockSummary struct {
	PartID         string `json:"part_id"`
	TotalStock     int    `json:"total_stock"`
	AllocatedCount int    `json:"allocated_count"`
	AvailableStock int    `json:"available_stock"`
	CanBuild       int    `json:"can_build"`
	BomCount       int    `json:"bom_count"`
	UsedInCount    int    `json:"used_in_count"`
	MinimumStock   int    `json:"minimum_stock"`
	LowStock       bool   `json:"low_stock"`
}

// Summary collects the derived quantities for one part in a single shot.
func (s *StockService) Summary(ctx context.Context, part *entity.Part) (*StockSummary, error) {
	total, err := s.TotalStock(ctx, part.ID)
	if err != nil {
		return nil, err
	}
	allocated, err := s.alloc.AllocationCount(ctx, part.ID)
	if err != nil {
		return nil, err
	}
	available := total - allocated
	if available < 0 {
		available = 0
	}
	canBuild, err := s.CanBuild(ctx, part.ID)
	if err != nil {
		return nil, err
	}
	bomCount, err := s.bom.CountFor(ctx, part.ID)
	if err != nil {
		return nil, err
	}
	usedInCount, err := s.bom.CountUsedIn(ctx, part.ID)
	if err != nil {
		return nil, err
	}

	return &StockSummary{
		PartID:         part.ID,
		TotalStock:     total,
		AllocatedCount: allocated,
		AvailableStock: available,
		CanBuild:       canBuild,
		BomCount:       bomCount,
		UsedInCount:    usedInCount,
		MinimumStock:   part.MinimumStock,
		LowStock:       available < part.MinimumStock,
	}, nil
}

// AddStockEntryRequest add stock entry request
type AddStockEntryRequest struct {
	Quantity int    `json:"quantity" binding:"required"`
	Location string `json:"location"`
	InStock  *bool  `json:"in_stock"`
	BatchNo  string `json:"batch_no"`
	Notes    string `json:"notes"`
}

// UpdateStockEntryRequest update stock entry request
type UpdateStockEntryRequest struct {
	Quantity int    `json:"quantity"`
	Location string `json:"location"`
	InStock  *bool  `json:"in_stock"`
	Notes    string `json:"notes"`
}

// Entries returns every ledger entry of a part.
func (s *StockService) Entries(ctx context.Context, partID string) ([]entity.StockEntry, error) {
	return s.ledger.EntriesFor(ctx, partID)
}

// Entry returns a single ledger entry.
func (s *StockService) Entry(ctx context.Context, entryID string) (*entity.StockEntry, error) {
	return s.ledger.GetEntry(ctx, entryID)
}

// AddEntry records new stock of a part.
func (s *StockService) AddEntry(ctx context.Context, partID string, req *AddStockEntryRequest) (*entity.StockEntry, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity %d: %w", req.Quantity, ErrInvalidQuantity)
	}

	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	now := time.Now()
	entry := &entity.StockEntry{
		ID:        newID(),
		PartID:    partID,
		Location:  req.Location,
		Quantity:  req.Quantity,
		InStock:   inStock,
		BatchNo:   req.BatchNo,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.ledger.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create stock entry: %w", err)
	}
	return entry, nil
}

// UpdateEntry modifies an existing ledger entry.
func (s *StockService) UpdateEntry(ctx context.Context, entryID string, req *UpdateStockEntryRequest) (*entity.StockEntry, error) {
	entry, err := s.ledger.GetEntry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("stock entry: %w", err)
	}

	if req.Quantity < 0 {
		return nil, fmt.Errorf("quantity %d: %w", req.Quantity, ErrInvalidQuantity)
	}
	if req.Quantity > 0 {
		entry.Quantity = req.Quantity
	}
	if req.Location != "" {
		entry.Location = req.Location
	}
	if req.InStock != nil {
		entry.InStock = *req.InStock
	}
	if req.Notes != "" {
		entry.Notes = req.Notes
	}
	entry.UpdatedAt = time.Now()

	if err := s.ledger.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("update stock entry: %w", err)
	}
	return entry, nil
}

// DeleteEntry removes a ledger entry.
func (s *StockService) DeleteEntry(ctx context.Context, entryID string) error {
	if err := s.ledger.Delete(ctx, entryID); err != nil {
		return fmt.Errorf("delete stock entry: %w", err)
	}
	return nil
}
