package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bitfantasy/parttrack/internal/model/entity"
)

// maxBomDepth bounds graph traversal. A legal BOM is at most a few dozen
// levels deep; anything past this is treated as corrupted data.
const maxBomDepth = 512

// BOMService maintains the part composition graph: directed edges from a
// buildable part to the consumable sub-parts it is assembled from.
type BOMService struct {
	store BomStore
	parts PartStore
}

func NewBOMService(store BomStore, parts PartStore) *BOMService {
	return &BOMService{store: store, parts: parts}
}

// AddBomItemRequest add BOM item request
type AddBomItemRequest struct {
	SubPartID string `json:"sub_part_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Note      string `json:"note"`
}

// UpdateBomItemRequest update BOM item request. Edge identity is immutable;
// only quantity and note can change.
type UpdateBomItemRequest struct {
	Quantity int    `json:"quantity"`
	Note     string `json:"note"`
}

// AddItem validates and inserts a BOM edge. Checks run in order: both parts
// exist and carry the right role flags, no self-reference, positive
// quantity, no cycle through existing edges, no duplicate pair. Nothing is
// persisted if any check fails.
func (s *BOMService) AddItem(ctx context.Context, partID string, req *AddBomItemRequest) (*entity.BomItem, error) {
	part, err := s.parts.FindByID(ctx, partID)
	if err != nil {
		return nil, fmt.Errorf("part: %w", err)
	}
	if !part.Buildable {
		return nil, fmt.Errorf("part %q: %w", part.Name, ErrNotBuildable)
	}

	subPart, err := s.parts.FindByID(ctx, req.SubPartID)
	if err != nil {
		return nil, fmt.Errorf("sub-part: %w", err)
	}
	if !subPart.Consumable {
		return nil, fmt.Errorf("sub-part %q: %w", subPart.Name, ErrNotConsumable)
	}

	if part.ID == subPart.ID {
		return nil, fmt.Errorf("part %q: %w", part.Name, ErrSelfReference)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity %d: %w", req.Quantity, ErrInvalidQuantity)
	}

	if err := s.checkRecursion(ctx, part, subPart); err != nil {
		return nil, err
	}

	exists, err := s.store.Exists(ctx, part.ID, subPart.ID)
	if err != nil {
		return nil, fmt.Errorf("check existing item: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%q -> %q: %w", part.Name, subPart.Name, ErrDuplicateEdge)
	}

	now := time.Now()
	item := &entity.BomItem{
		ID:        newID(),
		PartID:    part.ID,
		SubPartID: subPart.ID,
		Quantity:  req.Quantity,
		Note:      req.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create BOM item: %w", err)
	}

	item.Part = part
	item.SubPart = subPart
	return item, nil
}

// checkRecursion walks the sub-part's BOM transitively and rejects the new
// edge if the parent part is reachable anywhere below it. This is stricter
// than checking only the sub-part's direct BOM: multi-level cycles
// (A uses B, B uses C, C uses A) are rejected too. A cycle found among the
// edges already persisted is reported as corruption.
func (s *BOMService) checkRecursion(ctx context.Context, part, subPart *entity.Part) error {
	visited := make(map[string]struct{})
	onPath := make(map[string]struct{})

	var walk func(id string, depth int) error
	walk = func(id string, depth int) error {
		if depth > maxBomDepth {
			return fmt.Errorf("BOM deeper than %d below part %q: %w", maxBomDepth, subPart.Name, ErrStructuralCorruption)
		}
		if id == part.ID {
			return fmt.Errorf("part %q is used in the BOM for %q: %w", part.Name, subPart.Name, ErrRecursiveBom)
		}
		if _, seen := onPath[id]; seen {
			return fmt.Errorf("cycle through part %q in persisted BOM: %w", id, ErrStructuralCorruption)
		}
		if _, seen := visited[id]; seen {
			return nil
		}
		visited[id] = struct{}{}
		onPath[id] = struct{}{}
		defer delete(onPath, id)

		subIDs, err := s.store.SubPartIDs(ctx, id)
		if err != nil {
			return fmt.Errorf("load BOM of %q: %w", id, err)
		}
		for _, subID := range subIDs {
			if err := walk(subID, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	return walk(subPart.ID, 0)
}

// Items returns the direct BOM of a part, sub-parts loaded.
func (s *BOMService) Items(ctx context.Context, partID string) ([]entity.BomItem, error) {
	if _, err := s.parts.FindByID(ctx, partID); err != nil {
		return nil, fmt.Errorf("part: %w", err)
	}
	return s.store.ItemsFor(ctx, partID)
}

// UsedIn returns the BOM items in which the part appears as a sub-part:
// the parent parts that consume it.
func (s *BOMService) UsedIn(ctx context.Context, partID string) ([]entity.BomItem, error) {
	if _, err := s.parts.FindByID(ctx, partID); err != nil {
		return nil, fmt.Errorf("part: %w", err)
	}
	return s.store.UsedIn(ctx, partID)
}

func (s *BOMService) GetItem(ctx context.Context, itemID string) (*entity.BomItem, error) {
	return s.store.GetItem(ctx, itemID)
}

// UpdateItem changes the quantity and/or note of an existing edge.
func (s *BOMService) UpdateItem(ctx context.Context, itemID string, req *UpdateBomItemRequest) (*entity.BomItem, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("BOM item: %w", err)
	}

	if req.Quantity < 0 {
		return nil, fmt.Errorf("quantity %d: %w", req.Quantity, ErrInvalidQuantity)
	}
	if req.Quantity > 0 {
		item.Quantity = req.Quantity
	}
	if req.Note != "" {
		item.Note = req.Note
	}
	item.UpdatedAt = time.Now()

	if err := s.store.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update BOM item: %w", err)
	}
	return item, nil
}

func (s *BOMService) DeleteItem(ctx context.Context, itemID string) error {
	if err := s.store.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("delete BOM item: %w", err)
	}
	return nil
}

// BomCount returns the number of direct BOM items of a part.
func (s *BOMService) BomCount(ctx context.Context, partID string) (int, error) {
	return s.store.CountFor(ctx, partID)
}

// HasBom reports whether a part has any BOM items.
func (s *BOMService) HasBom(ctx context.Context, partID string) (bool, error) {
	count, err := s.store.CountFor(ctx, partID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UsedInCount returns the number of parts whose BOM consumes this part.
func (s *BOMService) UsedInCount(ctx context.Context, partID string) (int, error) {
	return s.store.CountUsedIn(ctx, partID)
}
