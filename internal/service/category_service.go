package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bitfantasy/parttrack/internal/model/entity"
	"github.com/bitfantasy/parttrack/internal/repository"
)

// maxCategoryDepth bounds tree recursion. The forest invariant keeps real
// trees shallow; hitting this means the data is corrupted.
const maxCategoryDepth = 256

// CategoryService maintains the part category forest.
type CategoryService struct {
	store CategoryStore
}

func NewCategoryService(store CategoryStore) *CategoryService {
	return &CategoryService{store: store}
}

// CreateCategoryRequest create category request
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	ParentID    *string `json:"parent_id"`
}

// UpdateCategoryRequest update category request
type UpdateCategoryRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ParentID    *string `json:"parent_id"`
}

func (s *CategoryService) Get(ctx context.Context, id string) (*entity.PartCategory, error) {
	return s.store.FindByID(ctx, id)
}

func (s *CategoryService) List(ctx context.Context) ([]entity.PartCategory, error) {
	return s.store.List(ctx)
}

// Parts returns the parts directly owned by a category.
func (s *CategoryService) Parts(ctx context.Context, id string) ([]entity.Part, error) {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.store.PartsIn(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, req *CreateCategoryRequest) (*entity.PartCategory, error) {
	if req.ParentID != nil {
		if _, err := s.store.FindByID(ctx, *req.ParentID); err != nil {
			return nil, fmt.Errorf("parent category: %w", err)
		}
	}

	now := time.Now()
	cat := &entity.PartCategory{
		ID:          newID(),
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Create(ctx, cat); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return cat, nil
}

// Update modifies a category. Re-parenting is validated against the forest
// invariant: a category may not become its own ancestor.
func (s *CategoryService) Update(ctx context.Context, id string, req *UpdateCategoryRequest) (*entity.PartCategory, error) {
	cat, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		cat.Name = req.Name
	}
	if req.Description != "" {
		cat.Description = req.Description
	}
	if req.ParentID != nil {
		if *req.ParentID == "" {
			cat.ParentID = nil
		} else {
			if err := s.checkReparent(ctx, id, *req.ParentID); err != nil {
				return nil, err
			}
			parentID := *req.ParentID
			cat.ParentID = &parentID
		}
	}
	cat.UpdatedAt = time.Now()

	if err := s.store.Update(ctx, cat); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return cat, nil
}

// checkReparent rejects a new parent that is the category itself or one of
// its descendants, walking up from the candidate parent to a root.
func (s *CategoryService) checkReparent(ctx context.Context, id, newParentID string) error {
	current := newParentID
	for depth := 0; current != ""; depth++ {
		if depth > maxCategoryDepth {
			return fmt.Errorf("category ancestry deeper than %d: %w", maxCategoryDepth, ErrStructuralCorruption)
		}
		if current == id {
			return fmt.Errorf("category %q: %w", id, ErrInvalidParent)
		}
		ancestor, err := s.store.FindByID(ctx, current)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("parent category %q: %w", current, err)
			}
			return err
		}
		if ancestor.ParentID == nil {
			break
		}
		current = *ancestor.ParentID
	}
	return nil
}

// Delete removes a category. Its directly owned parts and child categories
// are re-pointed at the category's parent before the row disappears, so
// deleting an interior node flattens one hierarchy level instead of
// orphaning or cascading.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteWithReparent(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// PartCount returns the number of parts owned by the category and every
// descendant category. A visited set converts any cycle in supposedly
// acyclic data into ErrStructuralCorruption instead of unbounded recursion.
func (s *CategoryService) PartCount(ctx context.Context, id string) (int, error) {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return 0, err
	}
	visited := make(map[string]struct{})
	return s.partCount(ctx, id, visited, 0)
}

func (s *CategoryService) partCount(ctx context.Context, id string, visited map[string]struct{}, depth int) (int, error) {
	if depth > maxCategoryDepth {
		return 0, fmt.Errorf("category tree deeper than %d at %q: %w", maxCategoryDepth, id, ErrStructuralCorruption)
	}
	if _, seen := visited[id]; seen {
		return 0, fmt.Errorf("category %q revisited during tree walk: %w", id, ErrStructuralCorruption)
	}
	visited[id] = struct{}{}

	count, err := s.store.DirectPartCount(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("count parts in %q: %w", id, err)
	}

	childIDs, err := s.store.ChildIDs(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("list children of %q: %w", id, err)
	}
	for _, childID := range childIDs {
		n, err := s.partCount(ctx, childID, visited, depth+1)
		if err != nil {
			return 0, err
		}
		count += n
	}
	return count, nil
}

// HasParts reports whether the category directly owns any parts. It does
// not recurse into children.
func (s *CategoryService) HasParts(ctx context.Context, id string) (bool, error) {
	count, err := s.store.DirectPartCount(ctx, id)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
