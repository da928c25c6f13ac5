package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bitfantasy/parttrack/internal/repository"
	"github.com/bitfantasy/parttrack/internal/service"
	"github.com/bitfantasy/parttrack/internal/testutil"
)

func newTestServices() *service.Services {
	return testutil.NewServices(testutil.NewMemStore())
}

func mustCreateCategory(t *testing.T, svc *service.Services, name string, parentID *string) string {
	t.Helper()
	cat, err := svc.Category.Create(context.Background(), &service.CreateCategoryRequest{
		Name:     name,
		ParentID: parentID,
	})
	if err != nil {
		t.Fatalf("create category %s: %v", name, err)
	}
	return cat.ID
}

func mustCreatePart(t *testing.T, svc *service.Services, req *service.CreatePartRequest) string {
	t.Helper()
	part, err := svc.Part.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create part %s: %v", req.Name, err)
	}
	return part.ID
}

func TestCategoryPartCountRecursesIntoDescendants(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()

	// root > mid > leaf, one part at each level plus one extra at leaf
	root := mustCreateCategory(t, svc, "Electronics", nil)
	mid := mustCreateCategory(t, svc, "Passives", &root)
	leaf := mustCreateCategory(t, svc, "Resistors", &mid)

	mustCreatePart(t, svc, &service.CreatePartRequest{Name: "Thing", CategoryID: &root})
	mustCreatePart(t, svc, &service.CreatePartRequest{Name: "Capacitor", CategoryID: &mid})
	mustCreatePart(t, svc, &service.CreatePartRequest{Name: "R-10k", CategoryID: &leaf})
	mustCreatePart(t, svc, &service.CreatePartRequest{Name: "R-1k", CategoryID: &leaf})

	count, err := svc.Category.PartCount(ctx, root)
	if err != nil {
		t.Fatalf("PartCount: %v", err)
	}
	if count != 4 {
		t.Errorf("root PartCount = %d, want 4", count)
	}

	count, err = svc.Category.PartCount(ctx, mid)
	if err != nil {
		t.Fatalf("PartCount: %v", err)
	}
	if count != 3 {
		t.Errorf("mid PartCount = %d, want 3", count)
	}

	count, err = svc.Category.PartCount(ctx, leaf)
	if err != nil {
		t.Fatalf("PartCount: %v", err)
	}
	if count != 2 {
		t.Errorf("leaf PartCount = %d, want 2", count)
	}
}

func TestCategoryHasPartsIsDirectOnly(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()

	root := mustCreateCategory(t, svc, "Mechanical", nil)
	child := mustCreateCategory(t, svc, "Fasteners", &root)
	mustCreatePart(t, svc, &service.CreatePartRequest{Name: "M3 Screw", CategoryID: &child})

	has, err := svc.Category.HasParts(ctx, root)
	if err != nil {
		t.Fatalf("HasParts: %v", err)
	}
	if has {
		t.Errorf("root HasParts = true, want false: parts only live in the child")
	}

	has, err = svc.Category.HasParts(ctx, child)
	if err != nil {
		t.Fatalf("HasParts: %v", err)
	}
	if !has {
		t.Errorf("child HasParts = false, want true")
	}
}

func TestCategoryDeleteReparentsPartsAndChildren(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()

	root := mustCreateCategory(t, svc, "Root", nil)
	mid := mustCreateCategory(t, svc, "Mid", &root)
	child := mustCreateCategory(t, svc, "Child", &mid)
	partID := mustCreatePart(t, svc, &service.CreatePartRequest{Name: "Widget", CategoryID: &mid})

	if err := svc.Category.Delete(ctx, mid); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := svc.Category.Get(ctx, mid); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("deleted category still found, err = %v", err)
	}

	part, err := svc.Part.Get(ctx, partID)
	if err != nil {
		t.Fatalf("Get part: %v", err)
	}
	if part.CategoryID == nil || *part.CategoryID != root {
		t.Errorf("part category = %v, want root %s", part.CategoryID, root)
	}

	childCat, err := svc.Category.Get(ctx, child)
	if err != nil {
		t.Fatalf("Get child: %v", err)
	}
	if childCat.ParentID == nil || *childCat.ParentID != root {
		t.Errorf("child parent = %v, want root %s", childCat.ParentID, root)
	}
}

func TestCategoryDeleteRootDetachesChildren(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()

	root := mustCreateCategory(t, svc, "Root", nil)
	child := mustCreateCategory(t, svc, "Child", &root)
	partID := mustCreatePart(t, svc, &service.CreatePartRequest{Name: "Loose", CategoryID: &root})

	if err := svc.Category.Delete(ctx, root); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	part, _ := svc.Part.Get(ctx, partID)
	if part.CategoryID != nil {
		t.Errorf("part category = %q, want uncategorized", *part.CategoryID)
	}

	childCat, _ := svc.Category.Get(ctx, child)
	if childCat.ParentID != nil {
		t.Errorf("child parent = %q, want root of forest", *childCat.ParentID)
	}
}

func TestCategoryReparentRejectsOwnSubtree(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()

	root := mustCreateCategory(t, svc, "A", nil)
	child := mustCreateCategory(t, svc, "B", &root)
	grandchild := mustCreateCategory(t, svc, "C", &child)

	// Cannot become a child of itself.
	if _, err := svc.Category.Update(ctx, root, &service.UpdateCategoryRequest{ParentID: &root}); !errors.Is(err, service.ErrInvalidParent) {
		t.Errorf("self parent err = %v, want ErrInvalidParent", err)
	}

	// Cannot move under a descendant.
	if _, err := svc.Category.Update(ctx, root, &service.UpdateCategoryRequest{ParentID: &grandchild}); !errors.Is(err, service.ErrInvalidParent) {
		t.Errorf("descendant parent err = %v, want ErrInvalidParent", err)
	}

	// A sibling-ward move stays legal.
	if _, err := svc.Category.Update(ctx, grandchild, &service.UpdateCategoryRequest{ParentID: &root}); err != nil {
		t.Errorf("valid reparent: %v", err)
	}
}

func TestCategoryDeleteMissingReturnsNotFound(t *testing.T) {
	svc := newTestServices()
	if err := svc.Category.Delete(context.Background(), "no-such-id"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
