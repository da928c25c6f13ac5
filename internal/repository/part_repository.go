package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/parttrack/internal/model/entity"
	"gorm.io/gorm"
)

// PartRepository part storage
type PartRepository struct {
	db *gorm.DB
}

func NewPartRepository(db *gorm.DB) *PartRepository {
	return &PartRepository{db: db}
}

func (r *PartRepository) FindByID(ctx context.Context, id string) (*entity.Part, error) {
	var part entity.Part
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&part).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &part, nil
}

func (r *PartRepository) FindByName(ctx context.Context, name string) (*entity.Part, error) {
	var part entity.Part
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&part).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &part, nil
}

func (r *PartRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Part, int64, error) {
	var parts []entity.Part
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Part{})

	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		query = query.Where("name ILIKE ? OR description ILIKE ? OR ipn ILIKE ?",
			"%"+keyword+"%", "%"+keyword+"%", "%"+keyword+"%")
	}
	if categoryID, ok := filters["category_id"].(string); ok && categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if buildable, ok := filters["buildable"].(bool); ok {
		query = query.Where("buildable = ?", buildable)
	}
	if salable, ok := filters["salable"].(bool); ok {
		query = query.Where("salable = ?", salable)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Category").
		Order("name ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&parts).Error

	return parts, total, err
}

func (r *PartRepository) Create(ctx context.Context, part *entity.Part) error {
	return translateError(r.db.WithContext(ctx).Create(part).Error)
}

func (r *PartRepository) Update(ctx context.Context, part *entity.Part) error {
	return translateError(r.db.WithContext(ctx).Save(part).Error)
}

// Delete removes a part together with every record that references it:
// BOM items on both sides of the graph, supplier parts and their price
// breaks, attachments and stock entries.
func (r *PartRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("part_id = ? OR sub_part_id = ?", id, id).
			Delete(&entity.BomItem{}).Error; err != nil {
			return err
		}

		if err := tx.Where("supplier_part_id IN (?)",
			tx.Model(&entity.SupplierPart{}).Select("id").Where("part_id = ?", id)).
			Delete(&entity.SupplierPriceBreak{}).Error; err != nil {
			return err
		}
		if err := tx.Where("part_id = ?", id).
			Delete(&entity.SupplierPart{}).Error; err != nil {
			return err
		}

		if err := tx.Where("part_id = ?", id).
			Delete(&entity.PartAttachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("part_id = ?", id).
			Delete(&entity.StockEntry{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&entity.Part{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
