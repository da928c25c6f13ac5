package service

import (
	"context"
	"strings"

	"github.com/bitfantasy/parttrack/internal/model/entity"
	"github.com/bitfantasy/parttrack/internal/repository"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// The engine services consume narrow store interfaces rather than the gorm
// repositories directly, so every derived quantity can be computed against
// any consistent point-in-time view of the data. The repositories in
// internal/repository satisfy these interfaces; tests use in-memory stores.

// CategoryStore is the category/part tree storage consumed by CategoryService.
type CategoryStore interface {
	FindByID(ctx context.Context, id string) (*entity.PartCategory, error)
	List(ctx context.Context) ([]entity.PartCategory, error)
	ChildIDs(ctx context.Context, id string) ([]string, error)
	DirectPartCount(ctx context.Context, id string) (int, error)
	PartsIn(ctx context.Context, id string) ([]entity.Part, error)
	Create(ctx context.Context, cat *entity.PartCategory) error
	Update(ctx context.Context, cat *entity.PartCategory) error
	DeleteWithReparent(ctx context.Context, id string) error
}

// PartStore is the part record storage.
type PartStore interface {
	FindByID(ctx context.Context, id string) (*entity.Part, error)
	FindByName(ctx context.Context, name string) (*entity.Part, error)
	List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Part, int64, error)
	Create(ctx context.Context, part *entity.Part) error
	Update(ctx context.Context, part *entity.Part) error
	Delete(ctx context.Context, id string) error
}

// BomStore is the BOM edge storage. ItemsFor loads SubPart, UsedIn loads Part.
type BomStore interface {
	ItemsFor(ctx context.Context, partID string) ([]entity.BomItem, error)
	UsedIn(ctx context.Context, partID string) ([]entity.BomItem, error)
	SubPartIDs(ctx context.Context, partID string) ([]string, error)
	GetItem(ctx context.Context, id string) (*entity.BomItem, error)
	Exists(ctx context.Context, partID, subPartID string) (bool, error)
	Create(ctx context.Context, item *entity.BomItem) error
	Update(ctx context.Context, item *entity.BomItem) error
	Delete(ctx context.Context, id string) error
	CountFor(ctx context.Context, partID string) (int, error)
	CountUsedIn(ctx context.Context, partID string) (int, error)
}

// StockLedger supplies the stock entries of a part.
type StockLedger interface {
	EntriesFor(ctx context.Context, partID string) ([]entity.StockEntry, error)
	GetEntry(ctx context.Context, id string) (*entity.StockEntry, error)
	Create(ctx context.Context, entry *entity.StockEntry) error
	Update(ctx context.Context, entry *entity.StockEntry) error
	Delete(ctx context.Context, id string) error
}

// BuildStore supplies build orders per part.
type BuildStore interface {
	ActiveBuildsFor(ctx context.Context, partID string) ([]entity.Build, error)
	FindByID(ctx context.Context, id string) (*entity.Build, error)
	List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Build, int64, error)
	Create(ctx context.Context, build *entity.Build) error
	Update(ctx context.Context, build *entity.Build) error
}

// SupplierStore is the supplier catalog storage.
type SupplierStore interface {
	FindCompany(ctx context.Context, id string) (*entity.Company, error)
	ListCompanies(ctx context.Context) ([]entity.Company, error)
	CreateCompany(ctx context.Context, company *entity.Company) error
	FindSupplierPart(ctx context.Context, id string) (*entity.SupplierPart, error)
	SupplierPartsFor(ctx context.Context, partID string) ([]entity.SupplierPart, error)
	CreateSupplierPart(ctx context.Context, sp *entity.SupplierPart) error
	PriceBreaksFor(ctx context.Context, supplierPartID string) ([]entity.SupplierPriceBreak, error)
	CreatePriceBreak(ctx context.Context, pb *entity.SupplierPriceBreak) error
}

// AttachmentStore is the attachment metadata storage.
type AttachmentStore interface {
	ListFor(ctx context.Context, partID string) ([]entity.PartAttachment, error)
	FindByID(ctx context.Context, id string) (*entity.PartAttachment, error)
	Create(ctx context.Context, attachment *entity.PartAttachment) error
	Delete(ctx context.Context, id string) error
}

// newID 32-char hex ID
func newID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:32]
}

// Services bundles all services.
type Services struct {
	Category   *CategoryService
	Part       *PartService
	BOM        *BOMService
	Allocation *AllocationService
	Stock      *StockService
	Build      *BuildService
	Export     *ExportService
	Supplier   *SupplierService
	Attachment *AttachmentService
}

// NewServices wires services over the gorm repositories.
func NewServices(repos *repository.Repositories, minioClient *minio.Client, bucket string) *Services {
	alloc := NewAllocationService(repos.Bom, repos.Build)
	return &Services{
		Category:   NewCategoryService(repos.Category),
		Part:       NewPartService(repos.Part, repos.Category),
		BOM:        NewBOMService(repos.Bom, repos.Part),
		Allocation: alloc,
		Stock:      NewStockService(repos.Stock, repos.Bom, alloc),
		Build:      NewBuildService(repos.Build, repos.Part),
		Export:     NewExportService(repos.Bom),
		Supplier:   NewSupplierService(repos.Supplier, repos.Part),
		Attachment: NewAttachmentService(repos.Attachment, repos.Part, minioClient, bucket),
	}
}
