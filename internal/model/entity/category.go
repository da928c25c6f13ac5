package entity

import (
	"time"
)

// PartCategory provides hierarchical organization of parts. The parent
// relation forms a forest: a root category has no parent.
type PartCategory struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	Name        string    `json:"name" gorm:"size:128;not null"`
	Description string    `json:"description,omitempty" gorm:"size:250"`
	ParentID    *string   `json:"parent_id,omitempty" gorm:"size:32;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Parent   *PartCategory  `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Children []PartCategory `json:"children,omitempty" gorm:"foreignKey:ParentID"`
	Parts    []Part         `json:"parts,omitempty" gorm:"foreignKey:CategoryID"`
}

func (PartCategory) TableName() string {
	return "part_categories"
}
