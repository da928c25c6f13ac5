package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/parttrack/internal/model/entity"
	"gorm.io/gorm"
)

// SupplierRepository supplier catalog storage
type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

func (r *SupplierRepository) FindCompany(ctx context.Context, id string) (*entity.Company, error) {
	var company entity.Company
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *SupplierRepository) ListCompanies(ctx context.Context) ([]entity.Company, error) {
	var companies []entity.Company
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&companies).Error
	return companies, err
}

func (r *SupplierRepository) CreateCompany(ctx context.Context, company *entity.Company) error {
	return translateError(r.db.WithContext(ctx).Create(company).Error)
}

func (r *SupplierRepository) FindSupplierPart(ctx context.Context, id string) (*entity.SupplierPart, error) {
	var sp entity.SupplierPart
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Part").
		Where("id = ?", id).
		First(&sp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sp, nil
}

func (r *SupplierRepository) SupplierPartsFor(ctx context.Context, partID string) ([]entity.SupplierPart, error) {
	var sps []entity.SupplierPart
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Where("part_id = ?", partID).
		Order("sku ASC").
		Find(&sps).Error
	return sps, err
}

func (r *SupplierRepository) CreateSupplierPart(ctx context.Context, sp *entity.SupplierPart) error {
	return translateError(r.db.WithContext(ctx).Create(sp).Error)
}

// PriceBreaksFor returns the price breaks of a supplier part ordered by
// ascending quantity threshold.
func (r *SupplierRepository) PriceBreaksFor(ctx context.Context, supplierPartID string) ([]entity.SupplierPriceBreak, error) {
	var breaks []entity.SupplierPriceBreak
	err := r.db.WithContext(ctx).
		Where("supplier_part_id = ?", supplierPartID).
		Order("quantity ASC").
		Find(&breaks).Error
	return breaks, err
}

func (r *SupplierRepository) CreatePriceBreak(ctx context.Context, pb *entity.SupplierPriceBreak) error {
	return translateError(r.db.WithContext(ctx).Create(pb).Error)
}
