package entity

import (
	"time"
)

// BomItem is a directed edge in the part composition graph: building one
// unit of Part consumes Quantity units of SubPart. At most one edge may
// exist per (part, sub_part) pair, and the edge set must stay acyclic.
type BomItem struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	PartID    string    `json:"part_id" gorm:"size:32;not null;index;uniqueIndex:idx_bom_part_sub"`
	SubPartID string    `json:"sub_part_id" gorm:"size:32;not null;index;uniqueIndex:idx_bom_part_sub"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	Note      string    `json:"note,omitempty" gorm:"size:100"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Part    *Part `json:"part,omitempty" gorm:"foreignKey:PartID"`
	SubPart *Part `json:"sub_part,omitempty" gorm:"foreignKey:SubPartID"`
}

func (BomItem) TableName() string {
	return "bom_items"
}
