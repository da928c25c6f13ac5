package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bitfantasy/parttrack/internal/repository"
	"github.com/bitfantasy/parttrack/internal/service"
)

func mustAssembly(t *testing.T, svc *service.Services, name string) string {
	t.Helper()
	// Buildable and consumable, so it can sit on either side of an edge.
	return mustCreatePart(t, svc, &service.CreatePartRequest{Name: name, Buildable: true})
}

func mustComponent(t *testing.T, svc *service.Services, name string) string {
	t.Helper()
	return mustCreatePart(t, svc, &service.CreatePartRequest{Name: name})
}

func mustAddItem(t *testing.T, svc *service.Services, partID, subPartID string, qty int) {
	t.Helper()
	if _, err := svc.BOM.AddItem(context.Background(), partID, &service.AddBomItemRequest{
		SubPartID: subPartID,
		Quantity:  qty,
	}); err != nil {
		t.Fatalf("add BOM item %s -> %s: %v", partID, subPartID, err)
	}
}

func TestAddItemValidation(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()

	widget := mustAssembly(t, svc, "Widget")
	screw := mustComponent(t, svc, "Screw")

	t.Run("missing part", func(t *testing.T) {
		_, err := svc.BOM.AddItem(ctx, "nope", &service.AddBomItemRequest{SubPartID: screw, Quantity: 1})
		if !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("missing sub-part", func(t *testing.T) {
		_, err := svc.BOM.AddItem(ctx, widget, &service.AddBomItemRequest{SubPartID: "nope", Quantity: 1})
		if !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("self reference", func(t *testing.T) {
		_, err := svc.BOM.AddItem(ctx, widget, &service.AddBomItemRequest{SubPartID: widget, Quantity: 1})
		if !errors.Is(err, service.ErrSelfReference) {
			t.Errorf("err = %v, want ErrSelfReference", err)
		}
	})

	t.Run("zero quantity", func(t *testing.T) {
		_, err := svc.BOM.AddItem(ctx, widget, &service.AddBomItemRequest{SubPartID: screw, Quantity: 0})
		if !errors.Is(err, service.ErrInvalidQuantity) {
			t.Errorf("err = %v, want ErrInvalidQuantity", err)
		}
	})

	t.Run("negative quantity", func(t *testing.T) {
		_, err := svc.BOM.AddItem(ctx, widget, &service.AddBomItemRequest{SubPartID: screw, Quantity: -3})
		if !errors.Is(err, service.ErrInvalidQuantity) {
			t.Errorf("err = %v, want ErrInvalidQuantity", err)
		}
	})

	t.Run("valid edge", func(t *testing.T) {
		item, err := svc.BOM.AddItem(ctx, widget, &service.AddBomItemRequest{SubPartID: screw, Quantity: 4, Note: "corner screws"})
		if err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		if item.Quantity != 4 || item.Note != "corner screws" {
			t.Errorf("item = %+v", item)
		}
	})

	t.Run("duplicate edge", func(t *testing.T) {
		_, err := svc.BOM.AddItem(ctx, widget, &service.AddBomItemRequest{SubPartID: screw, Quantity: 2})
		if !errors.Is(err, service.ErrDuplicateEdge) {
			t.Errorf("err = %v, want ErrDuplicateEdge", err)
		}
	})
}

func TestAddItemEnforcesRoleFlags(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()

	notBuildable := mustComponent(t, svc, "Raw Material")
	component := mustComponent(t, svc, "Bolt")

	_, err := svc.BOM.AddItem(ctx, notBuildable, &service.AddBomItemRequest{SubPartID: component, Quantity: 1})
	if !errors.Is(err, service.ErrNotBuildable) {
		t.Errorf("err = %v, want ErrNotBuildable", err)
	}

	widget := mustAssembly(t, svc, "Widget")
	notConsumable := false
	fixture, err := svc.Part.Create(ctx, &service.CreatePartRequest{Name: "Fixture", Consumable: &notConsumable})
	if err != nil {
		t.Fatalf("create part: %v", err)
	}

	_, err = svc.BOM.AddItem(ctx, widget, &service.AddBomItemRequest{SubPartID: fixture.ID, Quantity: 1})
	if !errors.Is(err, service.ErrNotConsumable) {
		t.Errorf("err = %v, want ErrNotConsumable", err)
	}
}

func TestAddItemRejectsReverseEdge(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()

	gadget := mustAssembly(t, svc, "Gadget")
	module := mustAssembly(t, svc, "Module")
	mustAddItem(t, svc, gadget, module, 2)

	_, err := svc.BOM.AddItem(ctx, module, &service.AddBomItemRequest{SubPartID: gadget, Quantity: 1})
	if !errors.Is(err, service.ErrRecursiveBom) {
		t.Fatalf("err = %v, want ErrRecursiveBom", err)
	}
	// The message names both ends of the offending edge.
	if !strings.Contains(err.Error(), "Module") || !strings.Contains(err.Error(), "Gadget") {
		t.Errorf("error message %q should name both parts", err.Error())
	}
}

func TestAddItemRejectsDeepCycle(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()

	// A uses B, B uses C; closing C -> A would make a 3-cycle.
	a := mustAssembly(t, svc, "A")
	b := mustAssembly(t, svc, "B")
	c := mustAssembly(t, svc, "C")
	mustAddItem(t, svc, a, b, 1)
	mustAddItem(t, svc, b, c, 1)

	_, err := svc.BOM.AddItem(ctx, c, &service.AddBomItemRequest{SubPartID: a, Quantity: 1})
	if !errors.Is(err, service.ErrRecursiveBom) {
		t.Errorf("err = %v, want ErrRecursiveBom", err)
	}

	// Diamond sharing is fine: A uses C directly too.
	if _, err := svc.BOM.AddItem(ctx, a, &service.AddBomItemRequest{SubPartID: c, Quantity: 5}); err != nil {
		t.Errorf("diamond edge rejected: %v", err)
	}
}

func TestBomCounts(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()

	widget := mustAssembly(t, svc, "Widget")
	gadget := mustAssembly(t, svc, "Gadget")
	screw := mustComponent(t, svc, "Screw")
	nut := mustComponent(t, svc, "Nut")

	mustAddItem(t, svc, widget, screw, 4)
	mustAddItem(t, svc, widget, nut, 4)
	mustAddItem(t, svc, gadget, screw, 2)

	if n, _ := svc.BOM.BomCount(ctx, widget); n != 2 {
		t.Errorf("widget BomCount = %d, want 2", n)
	}
	if has, _ := svc.BOM.HasBom(ctx, widget); !has {
		t.Errorf("widget HasBom = false")
	}
	if has, _ := svc.BOM.HasBom(ctx, screw); has {
		t.Errorf("screw HasBom = true, want false")
	}
	if n, _ := svc.BOM.UsedInCount(ctx, screw); n != 2 {
		t.Errorf("screw UsedInCount = %d, want 2", n)
	}
	if n, _ := svc.BOM.UsedInCount(ctx, widget); n != 0 {
		t.Errorf("widget UsedInCount = %d, want 0", n)
	}
}

func TestUpdateBomItem(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()

	widget := mustAssembly(t, svc, "Widget")
	screw := mustComponent(t, svc, "Screw")
	item, err := svc.BOM.AddItem(ctx, widget, &service.AddBomItemRequest{SubPartID: screw, Quantity: 4})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	updated, err := svc.BOM.UpdateItem(ctx, item.ID, &service.UpdateBomItemRequest{Quantity: 6, Note: "longer screws"})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if updated.Quantity != 6 || updated.Note != "longer screws" {
		t.Errorf("updated = %+v", updated)
	}

	if _, err := svc.BOM.UpdateItem(ctx, item.ID, &service.UpdateBomItemRequest{Quantity: -1}); !errors.Is(err, service.ErrInvalidQuantity) {
		t.Errorf("err = %v, want ErrInvalidQuantity", err)
	}

	if err := svc.BOM.DeleteItem(ctx, item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if n, _ := svc.BOM.BomCount(ctx, widget); n != 0 {
		t.Errorf("BomCount after delete = %d, want 0", n)
	}
}
