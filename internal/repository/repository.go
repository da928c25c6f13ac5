package repository

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
var ErrDuplicate = errors.New("record already exists")

// generateID 32-char hex ID
func generateID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:32]
}

// Repositories bundles all gorm repositories.
type Repositories struct {
	Category   *CategoryRepository
	Part       *PartRepository
	Bom        *BomRepository
	Stock      *StockRepository
	Build      *BuildRepository
	Supplier   *SupplierRepository
	Attachment *AttachmentRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Category:   NewCategoryRepository(db),
		Part:       NewPartRepository(db),
		Bom:        NewBomRepository(db),
		Stock:      NewStockRepository(db),
		Build:      NewBuildRepository(db),
		Supplier:   NewSupplierRepository(db),
		Attachment: NewAttachmentRepository(db),
	}
}

// translateError maps gorm sentinel errors onto repository sentinels.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
