package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/parttrack/internal/model/entity"
	"gorm.io/gorm"
)

// BuildRepository build order storage
type BuildRepository struct {
	db *gorm.DB
}

func NewBuildRepository(db *gorm.DB) *BuildRepository {
	return &BuildRepository{db: db}
}

// ActiveBuildsFor returns builds of a part that are neither complete nor
// cancelled.
func (r *BuildRepository) ActiveBuildsFor(ctx context.Context, partID string) ([]entity.Build, error) {
	var builds []entity.Build
	err := r.db.WithContext(ctx).
		Where("part_id = ? AND status NOT IN ?", partID,
			[]string{entity.BuildStatusComplete, entity.BuildStatusCancelled}).
		Order("created_at ASC").
		Find(&builds).Error
	return builds, err
}

func (r *BuildRepository) FindByID(ctx context.Context, id string) (*entity.Build, error) {
	var build entity.Build
	err := r.db.WithContext(ctx).
		Preload("Part").
		Where("id = ?", id).
		First(&build).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &build, nil
}

func (r *BuildRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Build, int64, error) {
	var builds []entity.Build
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Build{})

	if partID, ok := filters["part_id"].(string); ok && partID != "" {
		query = query.Where("part_id = ?", partID)
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Part").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&builds).Error

	return builds, total, err
}

func (r *BuildRepository) Create(ctx context.Context, build *entity.Build) error {
	return translateError(r.db.WithContext(ctx).Create(build).Error)
}

func (r *BuildRepository) Update(ctx context.Context, build *entity.Build) error {
	return translateError(r.db.WithContext(ctx).Save(build).Error)
}
