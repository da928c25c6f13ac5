package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bitfantasy/parttrack/internal/model/entity"
)

// PartService part record management
type PartService struct {
	store      PartStore
	categories CategoryStore
}

func NewPartService(store PartStore, categories CategoryStore) *PartService {
	return &PartService{store: store, categories: categories}
}

// CreatePartRequest create part request. Consumable and purchaseable
// default to true when omitted.
type CreatePartRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	IPN             string  `json:"ipn"`
	URL             string  `json:"url"`
	CategoryID      *string `json:"category_id"`
	DefaultLocation string  `json:"default_location"`
	MinimumStock    int     `json:"minimum_stock"`
	Units           string  `json:"units"`
	Buildable       bool    `json:"buildable"`
	Consumable      *bool   `json:"consumable"`
	Trackable       bool    `json:"trackable"`
	Purchaseable    *bool   `json:"purchaseable"`
	Salable         bool    `json:"salable"`
	Notes           string  `json:"notes"`
}

// UpdatePartRequest update part request
type UpdatePartRequest struct {
	Description     *string `json:"description"`
	IPN             *string `json:"ipn"`
	URL             *string `json:"url"`
	CategoryID      *string `json:"category_id"`
	DefaultLocation *string `json:"default_location"`
	MinimumStock    *int    `json:"minimum_stock"`
	Units           *string `json:"units"`
	Buildable       *bool   `json:"buildable"`
	Consumable      *bool   `json:"consumable"`
	Trackable       *bool   `json:"trackable"`
	Purchaseable    *bool   `json:"purchaseable"`
	Salable         *bool   `json:"salable"`
	Notes           *string `json:"notes"`
}

func (s *PartService) Get(ctx context.Context, id string) (*entity.Part, error) {
	return s.store.FindByID(ctx, id)
}

func (s *PartService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Part, int64, error) {
	return s.store.List(ctx, page, pageSize, filters)
}

func (s *PartService) Create(ctx context.Context, req *CreatePartRequest) (*entity.Part, error) {
	if req.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, fmt.Errorf("category: %w", err)
		}
	}
	if req.MinimumStock < 0 {
		return nil, fmt.Errorf("minimum stock %d: %w", req.MinimumStock, ErrInvalidQuantity)
	}

	units := req.Units
	if units == "" {
		units = entity.PartUnitPCS
	}
	consumable := true
	if req.Consumable != nil {
		consumable = *req.Consumable
	}
	purchaseable := true
	if req.Purchaseable != nil {
		purchaseable = *req.Purchaseable
	}

	now := time.Now()
	part := &entity.Part{
		ID:              newID(),
		Name:            req.Name,
		Description:     req.Description,
		IPN:             req.IPN,
		URL:             req.URL,
		CategoryID:      req.CategoryID,
		DefaultLocation: req.DefaultLocation,
		MinimumStock:    req.MinimumStock,
		Units:           units,
		Buildable:       req.Buildable,
		Consumable:      consumable,
		Trackable:       req.Trackable,
		Purchaseable:    purchaseable,
		Salable:         req.Salable,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.Create(ctx, part); err != nil {
		return nil, fmt.Errorf("create part: %w", err)
	}
	return part, nil
}

// Update modifies part fields. Role flags may change freely even when BOM
// edges referencing the part already exist; the flags are enforced only at
// edge insertion time.
func (s *PartService) Update(ctx context.Context, id string, req *UpdatePartRequest) (*entity.Part, error) {
	part, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		part.Description = *req.Description
	}
	if req.IPN != nil {
		part.IPN = *req.IPN
	}
	if req.URL != nil {
		part.URL = *req.URL
	}
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			part.CategoryID = nil
		} else {
			if _, err := s.categories.FindByID(ctx, *req.CategoryID); err != nil {
				return nil, fmt.Errorf("category: %w", err)
			}
			categoryID := *req.CategoryID
			part.CategoryID = &categoryID
		}
	}
	if req.DefaultLocation != nil {
		part.DefaultLocation = *req.DefaultLocation
	}
	if req.MinimumStock != nil {
		if *req.MinimumStock < 0 {
			return nil, fmt.Errorf("minimum stock %d: %w", *req.MinimumStock, ErrInvalidQuantity)
		}
		part.MinimumStock = *req.MinimumStock
	}
	if req.Units != nil {
		part.Units = *req.Units
	}
	if req.Buildable != nil {
		part.Buildable = *req.Buildable
	}
	if req.Consumable != nil {
		part.Consumable = *req.Consumable
	}
	if req.Trackable != nil {
		part.Trackable = *req.Trackable
	}
	if req.Purchaseable != nil {
		part.Purchaseable = *req.Purchaseable
	}
	if req.Salable != nil {
		part.Salable = *req.Salable
	}
	if req.Notes != nil {
		part.Notes = *req.Notes
	}
	part.UpdatedAt = time.Now()

	if err := s.store.Update(ctx, part); err != nil {
		return nil, fmt.Errorf("update part: %w", err)
	}
	return part, nil
}

// Delete removes a part. The storage layer cascades the removal to BOM
// edges on both sides, supplier parts, attachments and stock entries.
func (s *PartService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete part: %w", err)
	}
	return nil
}
