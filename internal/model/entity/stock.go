package entity

import (
	"time"
)

// StockEntry records a quantity of a part held at a location. Entries with
// InStock=false (e.g. shipped or quarantined stock) are excluded from stock
// aggregation.
type StockEntry struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	PartID    string    `json:"part_id" gorm:"size:32;not null;index"`
	Location  string    `json:"location,omitempty" gorm:"size:100"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	InStock   bool      `json:"in_stock" gorm:"not null;default:true"`
	BatchNo   string    `json:"batch_no,omitempty" gorm:"size:50"`
	Notes     string    `json:"notes,omitempty" gorm:"size:250"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Part *Part `json:"part,omitempty" gorm:"foreignKey:PartID"`
}

func (StockEntry) TableName() string {
	return "stock_entries"
}
