package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bitfantasy/parttrack/internal/model/entity"
)

// BuildService build order lifecycle
type BuildService struct {
	store BuildStore
	parts PartStore
}

func NewBuildService(store BuildStore, parts PartStore) *BuildService {
	return &BuildService{store: store, parts: parts}
}

// CreateBuildRequest create build order request
type CreateBuildRequest struct {
	PartID   string `json:"part_id" binding:"required"`
	Title    string `json:"title"`
	Quantity int    `json:"quantity" binding:"required"`
	Notes    string `json:"notes"`
}

func (s *BuildService) Get(ctx context.Context, id string) (*entity.Build, error) {
	return s.store.FindByID(ctx, id)
}

func (s *BuildService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Build, int64, error) {
	return s.store.List(ctx, page, pageSize, filters)
}

// ActiveBuilds returns the pending and in-progress builds for a part.
func (s *BuildService) ActiveBuilds(ctx context.Context, partID string) ([]entity.Build, error) {
	return s.store.ActiveBuildsFor(ctx, partID)
}

// QuantityBeingBuilt sums the ordered quantity across active builds of a part.
func (s *BuildService) QuantityBeingBuilt(ctx context.Context, partID string) (int, error) {
	builds, err := s.store.ActiveBuildsFor(ctx, partID)
	if err != nil {
		return 0, fmt.Errorf("active builds: %w", err)
	}
	total := 0
	for i := range builds {
		total += builds[i].Quantity
	}
	return total, nil
}

// Create opens a build order. Only buildable parts can be built.
func (s *BuildService) Create(ctx context.Context, req *CreateBuildRequest, createdBy string) (*entity.Build, error) {
	part, err := s.parts.FindByID(ctx, req.PartID)
	if err != nil {
		return nil, fmt.Errorf("part: %w", err)
	}
	if !part.Buildable {
		return nil, fmt.Errorf("part %q: %w", part.Name, ErrNotBuildable)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("build quantity %d: %w", req.Quantity, ErrInvalidQuantity)
	}

	now := time.Now()
	build := &entity.Build{
		ID:        newID(),
		PartID:    part.ID,
		Title:     req.Title,
		Quantity:  req.Quantity,
		Status:    entity.BuildStatusPending,
		Notes:     req.Notes,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, build); err != nil {
		return nil, fmt.Errorf("create build: %w", err)
	}
	return build, nil
}

// Start moves a pending build into progress.
func (s *BuildService) Start(ctx context.Context, id string) (*entity.Build, error) {
	build, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if build.Status != entity.BuildStatusPending {
		return nil, fmt.Errorf("build %q is %s, cannot start", id, build.Status)
	}
	build.Status = entity.BuildStatusInProgress
	build.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, build); err != nil {
		return nil, fmt.Errorf("update build: %w", err)
	}
	return build, nil
}

// Complete finishes a build. Its allocations stop counting against the
// sub-parts' available stock.
func (s *BuildService) Complete(ctx context.Context, id string) (*entity.Build, error) {
	build, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !build.IsActive() {
		return nil, fmt.Errorf("build %q is already %s", id, build.Status)
	}
	now := time.Now()
	build.Status = entity.BuildStatusComplete
	build.CompletedAt = &now
	build.UpdatedAt = now
	if err := s.store.Update(ctx, build); err != nil {
		return nil, fmt.Errorf("update build: %w", err)
	}
	return build, nil
}

// Cancel abandons an active build.
func (s *BuildService) Cancel(ctx context.Context, id string) (*entity.Build, error) {
	build, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !build.IsActive() {
		return nil, fmt.Errorf("build %q is already %s", id, build.Status)
	}
	build.Status = entity.BuildStatusCancelled
	build.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, build); err != nil {
		return nil, fmt.Errorf("update build: %w", err)
	}
	return build, nil
}
