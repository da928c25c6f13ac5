package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/parttrack/internal/model/entity"
	"gorm.io/gorm"
)

// BomRepository BOM edge storage
type BomRepository struct {
	db *gorm.DB
}

func NewBomRepository(db *gorm.DB) *BomRepository {
	return &BomRepository{db: db}
}

// ItemsFor returns the direct BOM items of a part with SubPart loaded,
// in stable creation order.
func (r *BomRepository) ItemsFor(ctx context.Context, partID string) ([]entity.BomItem, error) {
	var items []entity.BomItem
	err := r.db.WithContext(ctx).
		Preload("SubPart").
		Where("part_id = ?", partID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	return items, err
}

// UsedIn returns the BOM items in which the part appears as the sub-part,
// with the consuming Part loaded.
func (r *BomRepository) UsedIn(ctx context.Context, partID string) ([]entity.BomItem, error) {
	var items []entity.BomItem
	err := r.db.WithContext(ctx).
		Preload("Part").
		Where("sub_part_id = ?", partID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	return items, err
}

// SubPartIDs returns only the sub-part IDs of a part's BOM. Used by graph
// traversal where full rows are not needed.
func (r *BomRepository) SubPartIDs(ctx context.Context, partID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&entity.BomItem{}).
		Where("part_id = ?", partID).
		Pluck("sub_part_id", &ids).Error
	return ids, err
}

func (r *BomRepository) GetItem(ctx context.Context, id string) (*entity.BomItem, error) {
	var item entity.BomItem
	err := r.db.WithContext(ctx).
		Preload("Part").
		Preload("SubPart").
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *BomRepository) Exists(ctx context.Context, partID, subPartID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.BomItem{}).
		Where("part_id = ? AND sub_part_id = ?", partID, subPartID).
		Count(&count).Error
	return count > 0, err
}

// Create inserts a BOM edge. The (part_id, sub_part_id) unique index is the
// backstop against concurrent duplicate insertion; a violation surfaces as
// ErrDuplicate.
func (r *BomRepository) Create(ctx context.Context, item *entity.BomItem) error {
	return translateError(r.db.WithContext(ctx).Create(item).Error)
}

func (r *BomRepository) Update(ctx context.Context, item *entity.BomItem) error {
	return translateError(r.db.WithContext(ctx).Save(item).Error)
}

func (r *BomRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.BomItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BomRepository) CountFor(ctx context.Context, partID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.BomItem{}).
		Where("part_id = ?", partID).
		Count(&count).Error
	return int(count), err
}

func (r *BomRepository) CountUsedIn(ctx context.Context, partID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.BomItem{}).
		Where("sub_part_id = ?", partID).
		Count(&count).Error
	return int(count), err
}
