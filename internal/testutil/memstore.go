package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/bitfantasy/parttrack/internal/model/entity"
	"github.com/bitfantasy/parttrack/internal/repository"
	"github.com/bitfantasy/parttrack/internal/service"
)

// MemStore is an in-memory implementation of the service store interfaces.
// It mirrors the behavior of the gorm repositories, including duplicate
// detection and the cascades performed inside transactions, so service and
// handler tests run without a database. The per-interface views returned by
// Categories(), Parts() etc. all share this one structure.
type MemStore struct {
	mu sync.Mutex

	categories  map[string]*entity.PartCategory
	parts       map[string]*entity.Part
	bomItems    map[string]*entity.BomItem
	entries     map[string]*entity.StockEntry
	builds      map[string]*entity.Build
	companies   map[string]*entity.Company
	supParts    map[string]*entity.SupplierPart
	priceBreaks map[string]*entity.SupplierPriceBreak
	attachments map[string]*entity.PartAttachment
}

func NewMemStore() *MemStore {
	return &MemStore{
		categories:  make(map[string]*entity.PartCategory),
		parts:       make(map[string]*entity.Part),
		bomItems:    make(map[string]*entity.BomItem),
		entries:     make(map[string]*entity.StockEntry),
		builds:      make(map[string]*entity.Build),
		companies:   make(map[string]*entity.Company),
		supParts:    make(map[string]*entity.SupplierPart),
		priceBreaks: make(map[string]*entity.SupplierPriceBreak),
		attachments: make(map[string]*entity.PartAttachment),
	}
}

func (m *MemStore) Categories() service.CategoryStore   { return memCategories{m} }
func (m *MemStore) Parts() service.PartStore            { return memParts{m} }
func (m *MemStore) Bom() service.BomStore               { return memBom{m} }
func (m *MemStore) Stock() service.StockLedger          { return memStock{m} }
func (m *MemStore) Builds() service.BuildStore          { return memBuilds{m} }
func (m *MemStore) Suppliers() service.SupplierStore    { return memSuppliers{m} }
func (m *MemStore) Attachments() service.AttachmentStore { return memAttachments{m} }

// NewServices wires the full service bundle over the store, with object
// storage disabled.
func NewServices(m *MemStore) *service.Services {
	alloc := service.NewAllocationService(m.Bom(), m.Builds())
	return &service.Services{
		Category:   service.NewCategoryService(m.Categories()),
		Part:       service.NewPartService(m.Parts(), m.Categories()),
		BOM:        service.NewBOMService(m.Bom(), m.Parts()),
		Allocation: alloc,
		Stock:      service.NewStockService(m.Stock(), m.Bom(), alloc),
		Build:      service.NewBuildService(m.Builds(), m.Parts()),
		Export:     service.NewExportService(m.Bom()),
		Supplier:   service.NewSupplierService(m.Suppliers(), m.Parts()),
		Attachment: service.NewAttachmentService(m.Attachments(), m.Parts(), nil, ""),
	}
}

func paginate[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start > len(items) {
		start = len(items)
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ---- categories ----

type memCategories struct{ m *MemStore }

func (v memCategories) FindByID(ctx context.Context, id string) (*entity.PartCategory, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	cat, ok := v.m.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *cat
	return &cp, nil
}

func (v memCategories) List(ctx context.Context) ([]entity.PartCategory, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	out := make([]entity.PartCategory, 0, len(v.m.categories))
	for _, cat := range v.m.categories {
		out = append(out, *cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (v memCategories) ChildIDs(ctx context.Context, id string) ([]string, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	var out []string
	for _, cat := range v.m.categories {
		if cat.ParentID != nil && *cat.ParentID == id {
			out = append(out, cat.ID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (v memCategories) DirectPartCount(ctx context.Context, id string) (int, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	count := 0
	for _, p := range v.m.parts {
		if p.CategoryID != nil && *p.CategoryID == id {
			count++
		}
	}
	return count, nil
}

func (v memCategories) PartsIn(ctx context.Context, id string) ([]entity.Part, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	var out []entity.Part
	for _, p := range v.m.parts {
		if p.CategoryID != nil && *p.CategoryID == id {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (v memCategories) Create(ctx context.Context, cat *entity.PartCategory) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	if _, exists := v.m.categories[cat.ID]; exists {
		return repository.ErrDuplicate
	}
	cp := *cat
	v.m.categories[cat.ID] = &cp
	return nil
}

func (v memCategories) Update(ctx context.Context, cat *entity.PartCategory) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	if _, ok := v.m.categories[cat.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *cat
	v.m.categories[cat.ID] = &cp
	return nil
}

func (v memCategories) DeleteWithReparent(ctx context.Context, id string) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	cat, ok := v.m.categories[id]
	if !ok {
		return repository.ErrNotFound
	}

	reparent := func(target **string) {
		if cat.ParentID == nil {
			*target = nil
		} else {
			parentID := *cat.ParentID
			*target = &parentID
		}
	}
	for _, p := range v.m.parts {
		if p.CategoryID != nil && *p.CategoryID == id {
			reparent(&p.CategoryID)
		}
	}
	for _, child := range v.m.categories {
		if child.ParentID != nil && *child.ParentID == id {
			reparent(&child.ParentID)
		}
	}
	delete(v.m.categories, id)
	return nil
}

// ---- parts ----

type memParts struct{ m *MemStore }

func (v memParts) FindByID(ctx context.Context, id string) (*entity.Part, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	p, ok := v.m.parts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (v memParts) FindByName(ctx context.Context, name string) (*entity.Part, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	for _, p := range v.m.parts {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (v memParts) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Part, int64, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	var out []entity.Part
	for _, p := range v.m.parts {
		if kw, _ := filters["keyword"].(string); kw != "" {
			if !strings.Contains(strings.ToLower(p.Name), strings.ToLower(kw)) &&
				!strings.Contains(strings.ToLower(p.Description), strings.ToLower(kw)) {
				continue
			}
		}
		if catID, _ := filters["category_id"].(string); catID != "" {
			if p.CategoryID == nil || *p.CategoryID != catID {
				continue
			}
		}
		if ipn, _ := filters["ipn"].(string); ipn != "" && p.IPN != ipn {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, page, pageSize), int64(len(out)), nil
}

func (v memParts) Create(ctx context.Context, part *entity.Part) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	for _, p := range v.m.parts {
		if p.Name == part.Name {
			return repository.ErrDuplicate
		}
	}
	cp := *part
	v.m.parts[part.ID] = &cp
	return nil
}

func (v memParts) Update(ctx context.Context, part *entity.Part) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	if _, ok := v.m.parts[part.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *part
	v.m.parts[part.ID] = &cp
	return nil
}

func (v memParts) Delete(ctx context.Context, id string) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	if _, ok := v.m.parts[id]; !ok {
		return repository.ErrNotFound
	}

	for itemID, item := range v.m.bomItems {
		if item.PartID == id || item.SubPartID == id {
			delete(v.m.bomItems, itemID)
		}
	}
	for spID, sp := range v.m.supParts {
		if sp.PartID == id {
			for pbID, pb := range v.m.priceBreaks {
				if pb.SupplierPartID == spID {
					delete(v.m.priceBreaks, pbID)
				}
			}
			delete(v.m.supParts, spID)
		}
	}
	for attID, att := range v.m.attachments {
		if att.PartID == id {
			delete(v.m.attachments, attID)
		}
	}
	for entryID, entry := range v.m.entries {
		if entry.PartID == id {
			delete(v.m.entries, entryID)
		}
	}
	delete(v.m.parts, id)
	return nil
}

// ---- BOM ----

type memBom struct{ m *MemStore }

func (v memBom) sortedItems(match func(*entity.BomItem) bool) []entity.BomItem {
	var out []entity.BomItem
	for _, item := range v.m.bomItems {
		if match(item) {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (v memBom) ItemsFor(ctx context.Context, partID string) ([]entity.BomItem, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	items := v.sortedItems(func(it *entity.BomItem) bool { return it.PartID == partID })
	for i := range items {
		if sub, ok := v.m.parts[items[i].SubPartID]; ok {
			cp := *sub
			items[i].SubPart = &cp
		}
	}
	return items, nil
}

func (v memBom) UsedIn(ctx context.Context, partID string) ([]entity.BomItem, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	items := v.sortedItems(func(it *entity.BomItem) bool { return it.SubPartID == partID })
	for i := range items {
		if parent, ok := v.m.parts[items[i].PartID]; ok {
			cp := *parent
			items[i].Part = &cp
		}
	}
	return items, nil
}

func (v memBom) SubPartIDs(ctx context.Context, partID string) ([]string, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	var out []string
	for _, item := range v.m.bomItems {
		if item.PartID == partID {
			out = append(out, item.SubPartID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (v memBom) GetItem(ctx context.Context, id string) (*entity.BomItem, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	item, ok := v.m.bomItems[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (v memBom) Exists(ctx context.Context, partID, subPartID string) (bool, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	for _, item := range v.m.bomItems {
		if item.PartID == partID && item.SubPartID == subPartID {
			return true, nil
		}
	}
	return false, nil
}

func (v memBom) Create(ctx context.Context, item *entity.BomItem) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	for _, existing := range v.m.bomItems {
		if existing.PartID == item.PartID && existing.SubPartID == item.SubPartID {
			return repository.ErrDuplicate
		}
	}
	cp := *item
	v.m.bomItems[item.ID] = &cp
	return nil
}

func (v memBom) Update(ctx context.Context, item *entity.BomItem) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	if _, ok := v.m.bomItems[item.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *item
	v.m.bomItems[item.ID] = &cp
	return nil
}

func (v memBom) Delete(ctx context.Context, id string) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	if _, ok := v.m.bomItems[id]; !ok {
		return repository.ErrNotFound
	}
	delete(v.m.bomItems, id)
	return nil
}

func (v memBom) CountFor(ctx context.Context, partID string) (int, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	count := 0
	for _, item := range v.m.bomItems {
		if item.PartID == partID {
			count++
		}
	}
	return count, nil
}

func (v memBom) CountUsedIn(ctx context.Context, partID string) (int, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	count := 0
	for _, item := range v.m.bomItems {
		if item.SubPartID == partID {
			count++
		}
	}
	return count, nil
}

// ---- stock ledger ----

type memStock struct{ m *MemStore }

func (v memStock) EntriesFor(ctx context.Context, partID string) ([]entity.StockEntry, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	var out []entity.StockEntry
	for _, entry := range v.m.entries {
		if entry.PartID == partID {
			out = append(out, *entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (v memStock) GetEntry(ctx context.Context, id string) (*entity.StockEntry, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	entry, ok := v.m.entries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *entry
	return &cp, nil
}

func (v memStock) Create(ctx context.Context, entry *entity.StockEntry) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	cp := *entry
	v.m.entries[entry.ID] = &cp
	return nil
}

func (v memStock) Update(ctx context.Context, entry *entity.StockEntry) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	if _, ok := v.m.entries[entry.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *entry
	v.m.entries[entry.ID] = &cp
	return nil
}

func (v memStock) Delete(ctx context.Context, id string) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	if _, ok := v.m.entries[id]; !ok {
		return repository.ErrNotFound
	}
	delete(v.m.entries, id)
	return nil
}

// ---- builds ----

type memBuilds struct{ m *MemStore }

func (v memBuilds) ActiveBuildsFor(ctx context.Context, partID string) ([]entity.Build, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	var out []entity.Build
	for _, b := range v.m.builds {
		if b.PartID == partID && b.IsActive() {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (v memBuilds) FindByID(ctx context.Context, id string) (*entity.Build, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	b, ok := v.m.builds[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (v memBuilds) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Build, int64, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	var out []entity.Build
	for _, b := range v.m.builds {
		if partID, _ := filters["part_id"].(string); partID != "" && b.PartID != partID {
			continue
		}
		if status, _ := filters["status"].(string); status != "" && b.Status != status {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, page, pageSize), int64(len(out)), nil
}

func (v memBuilds) Create(ctx context.Context, build *entity.Build) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	cp := *build
	v.m.builds[build.ID] = &cp
	return nil
}

func (v memBuilds) Update(ctx context.Context, build *entity.Build) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	if _, ok := v.m.builds[build.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *build
	v.m.builds[build.ID] = &cp
	return nil
}

// ---- suppliers ----

type memSuppliers struct{ m *MemStore }

func (v memSuppliers) FindCompany(ctx context.Context, id string) (*entity.Company, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	c, ok := v.m.companies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (v memSuppliers) ListCompanies(ctx context.Context) ([]entity.Company, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	out := make([]entity.Company, 0, len(v.m.companies))
	for _, c := range v.m.companies {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (v memSuppliers) CreateCompany(ctx context.Context, company *entity.Company) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	for _, c := range v.m.companies {
		if c.Name == company.Name {
			return repository.ErrDuplicate
		}
	}
	cp := *company
	v.m.companies[company.ID] = &cp
	return nil
}

func (v memSuppliers) FindSupplierPart(ctx context.Context, id string) (*entity.SupplierPart, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	sp, ok := v.m.supParts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *sp
	return &cp, nil
}

func (v memSuppliers) SupplierPartsFor(ctx context.Context, partID string) ([]entity.SupplierPart, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	var out []entity.SupplierPart
	for _, sp := range v.m.supParts {
		if sp.PartID == partID {
			out = append(out, *sp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

func (v memSuppliers) CreateSupplierPart(ctx context.Context, sp *entity.SupplierPart) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	for _, existing := range v.m.supParts {
		if existing.PartID == sp.PartID && existing.SupplierID == sp.SupplierID && existing.SKU == sp.SKU {
			return repository.ErrDuplicate
		}
	}
	cp := *sp
	v.m.supParts[sp.ID] = &cp
	return nil
}

func (v memSuppliers) PriceBreaksFor(ctx context.Context, supplierPartID string) ([]entity.SupplierPriceBreak, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	var out []entity.SupplierPriceBreak
	for _, pb := range v.m.priceBreaks {
		if pb.SupplierPartID == supplierPartID {
			out = append(out, *pb)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Quantity < out[j].Quantity })
	return out, nil
}

func (v memSuppliers) CreatePriceBreak(ctx context.Context, pb *entity.SupplierPriceBreak) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	for _, existing := range v.m.priceBreaks {
		if existing.SupplierPartID == pb.SupplierPartID && existing.Quantity == pb.Quantity {
			return repository.ErrDuplicate
		}
	}
	cp := *pb
	v.m.priceBreaks[pb.ID] = &cp
	return nil
}

// ---- attachments ----

type memAttachments struct{ m *MemStore }

func (v memAttachments) ListFor(ctx context.Context, partID string) ([]entity.PartAttachment, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	var out []entity.PartAttachment
	for _, att := range v.m.attachments {
		if att.PartID == partID {
			out = append(out, *att)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (v memAttachments) FindByID(ctx context.Context, id string) (*entity.PartAttachment, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	att, ok := v.m.attachments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *att
	return &cp, nil
}

func (v memAttachments) Create(ctx context.Context, attachment *entity.PartAttachment) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	cp := *attachment
	v.m.attachments[attachment.ID] = &cp
	return nil
}

func (v memAttachments) Delete(ctx context.Context, id string) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	if _, ok := v.m.attachments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(v.m.attachments, id)
	return nil
}
