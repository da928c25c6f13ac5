package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bitfantasy/parttrack/internal/model/entity"
	"github.com/shopspring/decimal"
)

// SupplierService supplier catalog and pricing
type SupplierService struct {
	store SupplierStore
	parts PartStore
}

func NewSupplierService(store SupplierStore, parts PartStore) *SupplierService {
	return &SupplierService{store: store, parts: parts}
}

// CreateCompanyRequest create supplier company request
type CreateCompanyRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// CreateSupplierPartRequest create supplier part request
type CreateSupplierPartRequest struct {
	PartID       string          `json:"part_id" binding:"required"`
	SupplierID   string          `json:"supplier_id" binding:"required"`
	SKU          string          `json:"sku" binding:"required"`
	Manufacturer string          `json:"manufacturer"`
	MPN          string          `json:"mpn"`
	URL          string          `json:"url"`
	Description  string          `json:"description"`
	SinglePrice  decimal.Decimal `json:"single_price"`
	BaseCost     decimal.Decimal `json:"base_cost"`
	Packaging    string          `json:"packaging"`
	Multiple     int             `json:"multiple"`
	Minimum      int             `json:"minimum"`
	LeadTimeDays int             `json:"lead_time_days"`
}

// CreatePriceBreakRequest create price break request
type CreatePriceBreakRequest struct {
	Quantity int             `json:"quantity" binding:"required"`
	Cost     decimal.Decimal `json:"cost" binding:"required"`
}

func (s *SupplierService) GetCompany(ctx context.Context, id string) (*entity.Company, error) {
	return s.store.FindCompany(ctx, id)
}

func (s *SupplierService) ListCompanies(ctx context.Context) ([]entity.Company, error) {
	return s.store.ListCompanies(ctx)
}

func (s *SupplierService) CreateCompany(ctx context.Context, req *CreateCompanyRequest) (*entity.Company, error) {
	now := time.Now()
	company := &entity.Company{
		ID:          newID(),
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
		IsSupplier:  true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}
	return company, nil
}

func (s *SupplierService) GetSupplierPart(ctx context.Context, id string) (*entity.SupplierPart, error) {
	return s.store.FindSupplierPart(ctx, id)
}

// SupplierPartsFor lists the supplier offerings of a part.
func (s *SupplierService) SupplierPartsFor(ctx context.Context, partID string) ([]entity.SupplierPart, error) {
	return s.store.SupplierPartsFor(ctx, partID)
}

func (s *SupplierService) CreateSupplierPart(ctx context.Context, req *CreateSupplierPartRequest) (*entity.SupplierPart, error) {
	part, err := s.parts.FindByID(ctx, req.PartID)
	if err != nil {
		return nil, fmt.Errorf("part: %w", err)
	}
	if !part.Purchaseable {
		return nil, fmt.Errorf("part %q is not purchaseable", part.Name)
	}
	if _, err := s.store.FindCompany(ctx, req.SupplierID); err != nil {
		return nil, fmt.Errorf("supplier: %w", err)
	}

	multiple := req.Multiple
	if multiple <= 0 {
		multiple = 1
	}
	minimum := req.Minimum
	if minimum <= 0 {
		minimum = 1
	}

	now := time.Now()
	sp := &entity.SupplierPart{
		ID:           newID(),
		PartID:       req.PartID,
		SupplierID:   req.SupplierID,
		SKU:          req.SKU,
		Manufacturer: req.Manufacturer,
		MPN:          req.MPN,
		URL:          req.URL,
		Description:  req.Description,
		SinglePrice:  req.SinglePrice,
		BaseCost:     req.BaseCost,
		Packaging:    req.Packaging,
		Multiple:     multiple,
		Minimum:      minimum,
		LeadTimeDays: req.LeadTimeDays,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateSupplierPart(ctx, sp); err != nil {
		return nil, fmt.Errorf("create supplier part: %w", err)
	}
	return sp, nil
}

func (s *SupplierService) PriceBreaks(ctx context.Context, supplierPartID string) ([]entity.SupplierPriceBreak, error) {
	if _, err := s.store.FindSupplierPart(ctx, supplierPartID); err != nil {
		return nil, err
	}
	return s.store.PriceBreaksFor(ctx, supplierPartID)
}

func (s *SupplierService) CreatePriceBreak(ctx context.Context, supplierPartID string, req *CreatePriceBreakRequest) (*entity.SupplierPriceBreak, error) {
	if _, err := s.store.FindSupplierPart(ctx, supplierPartID); err != nil {
		return nil, err
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("price break quantity %d: %w", req.Quantity, ErrInvalidQuantity)
	}

	now := time.Now()
	pb := &entity.SupplierPriceBreak{
		ID:             newID(),
		SupplierPartID: supplierPartID,
		Quantity:       req.Quantity,
		Cost:           req.Cost,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.CreatePriceBreak(ctx, pb); err != nil {
		return nil, fmt.Errorf("create price break: %w", err)
	}
	return pb, nil
}

// UnitPrice returns the unit cost for ordering quantity units: the cost of
// the largest price break at or below the quantity, or the single price when
// no break applies.
func (s *SupplierService) UnitPrice(ctx context.Context, supplierPartID string, quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, fmt.Errorf("quantity %d: %w", quantity, ErrInvalidQuantity)
	}
	sp, err := s.store.FindSupplierPart(ctx, supplierPartID)
	if err != nil {
		return decimal.Zero, err
	}
	breaks, err := s.store.PriceBreaksFor(ctx, supplierPartID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("price breaks: %w", err)
	}

	// Breaks come back ordered by quantity ascending.
	price := sp.SinglePrice
	for i := range breaks {
		if breaks[i].Quantity > quantity {
			break
		}
		price = breaks[i].Cost
	}
	return price, nil
}

// OrderQuantity rounds a desired quantity up to the supplier's order
// constraints: at least Minimum, and a whole number of Multiple.
func (sp *SupplierService) OrderQuantity(supplierPart *entity.SupplierPart, quantity int) int {
	if quantity < supplierPart.Minimum {
		quantity = supplierPart.Minimum
	}
	if m := supplierPart.Multiple; m > 1 {
		if rem := quantity % m; rem != 0 {
			quantity += m - rem
		}
	}
	return quantity
}

// OrderPrice prices an order of the given quantity: the order quantity times
// the unit price at that quantity, plus the per-order base cost.
func (s *SupplierService) OrderPrice(ctx context.Context, supplierPartID string, quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, fmt.Errorf("quantity %d: %w", quantity, ErrInvalidQuantity)
	}
	sp, err := s.store.FindSupplierPart(ctx, supplierPartID)
	if err != nil {
		return decimal.Zero, err
	}

	orderQty := s.OrderQuantity(sp, quantity)
	unit, err := s.UnitPrice(ctx, supplierPartID, orderQty)
	if err != nil {
		return decimal.Zero, err
	}
	return unit.Mul(decimal.NewFromInt(int64(orderQty))).Add(sp.BaseCost), nil
}
