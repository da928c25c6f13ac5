package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/parttrack/internal/model/entity"
	"gorm.io/gorm"
)

// StockRepository stock ledger storage
type StockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) *StockRepository {
	return &StockRepository{db: db}
}

// EntriesFor returns every stock entry for a part, whether in stock or not.
func (r *StockRepository) EntriesFor(ctx context.Context, partID string) ([]entity.StockEntry, error) {
	var entries []entity.StockEntry
	err := r.db.WithContext(ctx).
		Where("part_id = ?", partID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *StockRepository) GetEntry(ctx context.Context, id string) (*entity.StockEntry, error) {
	var entry entity.StockEntry
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *StockRepository) Create(ctx context.Context, entry *entity.StockEntry) error {
	return translateError(r.db.WithContext(ctx).Create(entry).Error)
}

func (r *StockRepository) Update(ctx context.Context, entry *entity.StockEntry) error {
	return translateError(r.db.WithContext(ctx).Save(entry).Error)
}

func (r *StockRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.StockEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
