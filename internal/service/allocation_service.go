package service

import (
	"context"
	"fmt"
)

// BuildAllocation is one build's claim on a part's stock: an active build
// of a consuming part, and the quantity of this part it demands.
type BuildAllocation struct {
	BuildID   string `json:"build_id"`
	PartID    string `json:"part_id"`
	PartName  string `json:"part_name,omitempty"`
	BuildQty  int    `json:"build_quantity"`
	UnitQty   int    `json:"unit_quantity"`
	Quantity  int    `json:"quantity"`
}

// AllocationService computes how much of a part's stock is committed to
// in-progress work. Allocations are derived on read from the BOM reverse
// index and live build records; nothing is stored.
type AllocationService struct {
	bom    BomStore
	builds BuildStore
}

func NewAllocationService(bom BomStore, builds BuildStore) *AllocationService {
	return &AllocationService{bom: bom, builds: builds}
}

// BuildAllocations lists, for every part that consumes this part, an entry
// per active build of that consumer, with quantity = BOM edge quantity x
// build quantity.
func (s *AllocationService) BuildAllocations(ctx context.Context, partID string) ([]BuildAllocation, error) {
	edges, err := s.bom.UsedIn(ctx, partID)
	if err != nil {
		return nil, fmt.Errorf("load used-in edges: %w", err)
	}

	var allocations []BuildAllocation
	for _, edge := range edges {
		builds, err := s.builds.ActiveBuildsFor(ctx, edge.PartID)
		if err != nil {
			return nil, fmt.Errorf("load active builds of %q: %w", edge.PartID, err)
		}
		for _, build := range builds {
			a := BuildAllocation{
				BuildID:  build.ID,
				PartID:   edge.PartID,
				BuildQty: build.Quantity,
				UnitQty:  edge.Quantity,
				Quantity: edge.Quantity * build.Quantity,
			}
			if edge.Part != nil {
				a.PartName = edge.Part.Name
			}
			allocations = append(allocations, a)
		}
	}
	return allocations, nil
}

// AllocatedBuildCount sums the quantities across BuildAllocations.
func (s *AllocationService) AllocatedBuildCount(ctx context.Context, partID string) (int, error) {
	allocations, err := s.BuildAllocations(ctx, partID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, a := range allocations {
		total += a.Quantity
	}
	return total, nil
}

// AllocationCount is the total stock of a part committed to any consumer.
// Builds are the only allocation category today; future categories (e.g.
// sales orders) are added as further summed terms without touching the
// stock aggregation contract.
func (s *AllocationService) AllocationCount(ctx context.Context, partID string) (int, error) {
	buildCount, err := s.AllocatedBuildCount(ctx, partID)
	if err != nil {
		return 0, err
	}
	return buildCount, nil
}
