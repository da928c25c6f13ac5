package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/parttrack/internal/model/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryRepository part category storage
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*entity.PartCategory, error) {
	var cat entity.PartCategory
	err := r.db.WithContext(ctx).
		Preload("Parent").
		Where("id = ?", id).
		First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]entity.PartCategory, error) {
	var cats []entity.PartCategory
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&cats).Error
	return cats, err
}

// ChildIDs returns the IDs of the direct child categories.
func (r *CategoryRepository) ChildIDs(ctx context.Context, id string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&entity.PartCategory{}).
		Where("parent_id = ?", id).
		Order("name ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// DirectPartCount counts parts directly owned by the category, not
// descending into child categories.
func (r *CategoryRepository) DirectPartCount(ctx context.Context, id string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Part{}).
		Where("category_id = ?", id).
		Count(&count).Error
	return int(count), err
}

// PartsIn returns parts directly owned by the category.
func (r *CategoryRepository) PartsIn(ctx context.Context, id string) ([]entity.Part, error) {
	var parts []entity.Part
	err := r.db.WithContext(ctx).
		Where("category_id = ?", id).
		Order("name ASC").
		Find(&parts).Error
	return parts, err
}

func (r *CategoryRepository) Create(ctx context.Context, cat *entity.PartCategory) error {
	return translateError(r.db.WithContext(ctx).Create(cat).Error)
}

func (r *CategoryRepository) Update(ctx context.Context, cat *entity.PartCategory) error {
	return translateError(r.db.WithContext(ctx).Save(cat).Error)
}

// DeleteWithReparent removes a category after re-pointing its directly
// owned parts and child categories at the category's parent. Deleting an
// interior node flattens one level of the hierarchy; deleting a root leaves
// its parts uncategorized and its children as new roots. Runs in a single
// transaction so no part or category ever references the deleted row.
func (r *CategoryRepository) DeleteWithReparent(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cat entity.PartCategory
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&cat).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Model(&entity.Part{}).
			Where("category_id = ?", id).
			Update("category_id", cat.ParentID).Error; err != nil {
			return err
		}

		if err := tx.Model(&entity.PartCategory{}).
			Where("parent_id = ?", id).
			Update("parent_id", cat.ParentID).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&entity.PartCategory{}).Error
	})
}
