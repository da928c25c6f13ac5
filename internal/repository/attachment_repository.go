package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/parttrack/internal/model/entity"
	"gorm.io/gorm"
)

// AttachmentRepository part attachment metadata storage
type AttachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

func (r *AttachmentRepository) ListFor(ctx context.Context, partID string) ([]entity.PartAttachment, error) {
	var attachments []entity.PartAttachment
	err := r.db.WithContext(ctx).
		Where("part_id = ?", partID).
		Order("created_at DESC").
		Find(&attachments).Error
	return attachments, err
}

func (r *AttachmentRepository) FindByID(ctx context.Context, id string) (*entity.PartAttachment, error) {
	var attachment entity.PartAttachment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&attachment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &attachment, nil
}

func (r *AttachmentRepository) Create(ctx context.Context, attachment *entity.PartAttachment) error {
	return translateError(r.db.WithContext(ctx).Create(attachment).Error)
}

func (r *AttachmentRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.PartAttachment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
