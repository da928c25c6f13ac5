package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Company is a supplier (or manufacturer) of parts.
type Company struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	Name        string    `json:"name" gorm:"size:128;not null;uniqueIndex"`
	Description string    `json:"description,omitempty" gorm:"size:250"`
	URL         string    `json:"url,omitempty" gorm:"size:250"`
	IsSupplier  bool      `json:"is_supplier" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Company) TableName() string {
	return "companies"
}

// SupplierPart represents a part as provided by a specific supplier,
// identified by the supplier's SKU. A part may be available from multiple
// suppliers; (part, supplier, SKU) is unique.
type SupplierPart struct {
	ID           string `json:"id" gorm:"primaryKey;size:32"`
	PartID       string `json:"part_id" gorm:"size:32;not null;index;uniqueIndex:idx_supplier_part_sku"`
	SupplierID   string `json:"supplier_id" gorm:"size:32;not null;index;uniqueIndex:idx_supplier_part_sku"`
	SKU          string `json:"sku" gorm:"size:100;not null;uniqueIndex:idx_supplier_part_sku"`
	Manufacturer string `json:"manufacturer,omitempty" gorm:"size:100"`
	MPN          string `json:"mpn,omitempty" gorm:"size:100"`
	URL          string `json:"url,omitempty" gorm:"size:250"`
	Description  string `json:"description,omitempty" gorm:"size:250"`

	// SinglePrice is the default unit price; BaseCost is a per-order charge
	// independent of quantity (e.g. a reeling fee).
	SinglePrice decimal.Decimal `json:"single_price" gorm:"type:decimal(10,3);not null;default:0"`
	BaseCost    decimal.Decimal `json:"base_cost" gorm:"type:decimal(10,3);not null;default:0"`

	Packaging    string    `json:"packaging,omitempty" gorm:"size:50"`
	Multiple     int       `json:"multiple" gorm:"not null;default:1"`
	Minimum      int       `json:"minimum" gorm:"not null;default:1"`
	LeadTimeDays int       `json:"lead_time_days"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Part        *Part                `json:"part,omitempty" gorm:"foreignKey:PartID"`
	Supplier    *Company             `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	PriceBreaks []SupplierPriceBreak `json:"price_breaks,omitempty" gorm:"foreignKey:SupplierPartID"`
}

func (SupplierPart) TableName() string {
	return "supplier_parts"
}

// ManufacturerString joins manufacturer name and MPN for display.
func (sp *SupplierPart) ManufacturerString() string {
	items := []string{}
	if sp.Manufacturer != "" {
		items = append(items, sp.Manufacturer)
	}
	if sp.MPN != "" {
		items = append(items, sp.MPN)
	}
	return strings.Join(items, " | ")
}

// SupplierPriceBreak maps an order quantity threshold to a discounted unit
// cost. (supplier_part, quantity) is unique.
type SupplierPriceBreak struct {
	ID             string          `json:"id" gorm:"primaryKey;size:32"`
	SupplierPartID string          `json:"supplier_part_id" gorm:"size:32;not null;index;uniqueIndex:idx_price_break_qty"`
	Quantity       int             `json:"quantity" gorm:"not null;uniqueIndex:idx_price_break_qty"`
	Cost           decimal.Decimal `json:"cost" gorm:"type:decimal(10,3);not null"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (SupplierPriceBreak) TableName() string {
	return "supplier_price_breaks"
}
