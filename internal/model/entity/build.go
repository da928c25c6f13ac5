package entity

import (
	"time"
)

// BuildStatus build lifecycle states
const (
	BuildStatusPending    = "pending"
	BuildStatusInProgress = "in_progress"
	BuildStatusComplete   = "complete"
	BuildStatusCancelled  = "cancelled"
)

// Build is an order to assemble a quantity of a part. Active builds reserve
// stock of the part's BOM sub-parts.
type Build struct {
	ID          string     `json:"id" gorm:"primaryKey;size:32"`
	PartID      string     `json:"part_id" gorm:"size:32;not null;index"`
	Title       string     `json:"title,omitempty" gorm:"size:128"`
	Quantity    int        `json:"quantity" gorm:"not null"`
	Status      string     `json:"status" gorm:"size:16;not null;default:pending"`
	Notes       string     `json:"notes,omitempty" gorm:"type:text"`
	CreatedBy   string     `json:"created_by,omitempty" gorm:"size:32"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Relations
	Part *Part `json:"part,omitempty" gorm:"foreignKey:PartID"`
}

func (Build) TableName() string {
	return "builds"
}

// IsActive reports whether the build still consumes allocated stock.
// Builds marked complete or cancelled are ignored.
func (b *Build) IsActive() bool {
	return b.Status != BuildStatusComplete && b.Status != BuildStatusCancelled
}
