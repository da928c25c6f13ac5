package entity

import (
	"time"
)

// PartUnit default quantity units
const (
	PartUnitPCS = "pcs"
)

// Part is a manufacturable or purchasable item. Parts can be stocked in
// multiple locations and combined to form other parts via BOM items.
type Part struct {
	ID          string  `json:"id" gorm:"primaryKey;size:32"`
	Name        string  `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Description string  `json:"description" gorm:"size:250"`
	// IPN is the internal part number. Distinct parts (variants) may share one,
	// so it is deliberately not unique.
	IPN               string  `json:"ipn,omitempty" gorm:"size:100;index"`
	URL               string  `json:"url,omitempty" gorm:"size:250"`
	CategoryID        *string `json:"category_id,omitempty" gorm:"size:32;index"`
	DefaultLocation   string  `json:"default_location,omitempty" gorm:"size:100"`
	DefaultSupplierID *string `json:"default_supplier_id,omitempty" gorm:"size:32"`
	MinimumStock      int     `json:"minimum_stock" gorm:"not null;default:0"`
	Units             string  `json:"units" gorm:"size:20;not null;default:pcs"`

	// Role flags. Buildable parts may be the parent side of a BOM item,
	// consumable parts the sub-part side. Enforced at item insertion time.
	Buildable    bool `json:"buildable" gorm:"not null;default:false"`
	Consumable   bool `json:"consumable" gorm:"not null;default:true"`
	Trackable    bool `json:"trackable" gorm:"not null;default:false"`
	Purchaseable bool `json:"purchaseable" gorm:"not null;default:true"`
	Salable      bool `json:"salable" gorm:"not null;default:false"`

	Notes     string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Category        *PartCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	DefaultSupplier *SupplierPart `json:"default_supplier,omitempty" gorm:"foreignKey:DefaultSupplierID"`
}

func (Part) TableName() string {
	return "parts"
}
