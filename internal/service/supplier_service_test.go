package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bitfantasy/parttrack/internal/model/entity"
	"github.com/bitfantasy/parttrack/internal/service"
)

func mustSupplierPart(t *testing.T, svc *service.Services, req *service.CreateSupplierPartRequest) *entity.SupplierPart {
	t.Helper()
	sp, err := svc.Supplier.CreateSupplierPart(context.Background(), req)
	if err != nil {
		t.Fatalf("create supplier part: %v", err)
	}
	return sp
}

func mustPriceBreak(t *testing.T, svc *service.Services, supplierPartID string, qty int, cost string) {
	t.Helper()
	if _, err := svc.Supplier.CreatePriceBreak(context.Background(), supplierPartID, &service.CreatePriceBreakRequest{
		Quantity: qty,
		Cost:     decimal.RequireFromString(cost),
	}); err != nil {
		t.Fatalf("create price break qty=%d: %v", qty, err)
	}
}

func supplierFixture(t *testing.T, svc *service.Services) *entity.SupplierPart {
	t.Helper()
	ctx := context.Background()
	part := mustComponent(t, svc, "Resistor 10k")
	company, err := svc.Supplier.CreateCompany(ctx, &service.CreateCompanyRequest{Name: "Acme Components"})
	if err != nil {
		t.Fatalf("create company: %v", err)
	}
	return mustSupplierPart(t, svc, &service.CreateSupplierPartRequest{
		PartID:      part,
		SupplierID:  company.ID,
		SKU:         "ACME-R10K",
		SinglePrice: decimal.RequireFromString("0.10"),
	})
}

func TestUnitPricePicksLargestApplicableBreak(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()

	sp := supplierFixture(t, svc)
	mustPriceBreak(t, svc, sp.ID, 10, "0.08")
	mustPriceBreak(t, svc, sp.ID, 100, "0.05")
	mustPriceBreak(t, svc, sp.ID, 1000, "0.03")

	cases := []struct {
		qty  int
		want string
	}{
		{1, "0.10"},    // below first break, single price
		{9, "0.10"},
		{10, "0.08"},   // at break boundary
		{99, "0.08"},
		{100, "0.05"},
		{5000, "0.03"},
	}
	for _, tc := range cases {
		got, err := svc.Supplier.UnitPrice(ctx, sp.ID, tc.qty)
		if err != nil {
			t.Fatalf("UnitPrice(%d): %v", tc.qty, err)
		}
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("UnitPrice(%d) = %s, want %s", tc.qty, got, tc.want)
		}
	}
}

func TestUnitPriceWithoutBreaksIsSinglePrice(t *testing.T) {
	svc := newTestServices()
	sp := supplierFixture(t, svc)

	got, err := svc.Supplier.UnitPrice(context.Background(), sp.ID, 500)
	if err != nil {
		t.Fatalf("UnitPrice: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("0.10")) {
		t.Errorf("UnitPrice = %s, want 0.10", got)
	}
}

func TestUnitPriceRejectsNonPositiveQuantity(t *testing.T) {
	svc := newTestServices()
	sp := supplierFixture(t, svc)

	for _, qty := range []int{0, -3} {
		if _, err := svc.Supplier.UnitPrice(context.Background(), sp.ID, qty); !errors.Is(err, service.ErrInvalidQuantity) {
			t.Errorf("UnitPrice(%d) err = %v, want ErrInvalidQuantity", qty, err)
		}
	}
}

func TestOrderQuantityRounding(t *testing.T) {
	svc := newTestServices()
	sp := &entity.SupplierPart{Minimum: 25, Multiple: 10}

	cases := []struct {
		qty, want int
	}{
		{1, 30},   // raised to minimum 25, then up to multiple of 10
		{25, 30},
		{30, 30},
		{31, 40},
		{100, 100},
	}
	for _, tc := range cases {
		if got := svc.Supplier.OrderQuantity(sp, tc.qty); got != tc.want {
			t.Errorf("OrderQuantity(%d) = %d, want %d", tc.qty, got, tc.want)
		}
	}

	single := &entity.SupplierPart{Minimum: 1, Multiple: 1}
	if got := svc.Supplier.OrderQuantity(single, 7); got != 7 {
		t.Errorf("OrderQuantity(7) with unit packaging = %d, want 7", got)
	}
}

func TestOrderPriceIncludesBaseCost(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()

	part := mustComponent(t, svc, "Capacitor 100n")
	company, err := svc.Supplier.CreateCompany(ctx, &service.CreateCompanyRequest{Name: "Volt Traders"})
	if err != nil {
		t.Fatalf("create company: %v", err)
	}
	sp := mustSupplierPart(t, svc, &service.CreateSupplierPartRequest{
		PartID:      part,
		SupplierID:  company.ID,
		SKU:         "VT-C100N",
		SinglePrice: decimal.RequireFromString("0.20"),
		BaseCost:    decimal.RequireFromString("5.00"),
		Minimum:     50,
		Multiple:    50,
	})
	mustPriceBreak(t, svc, sp.ID, 100, "0.15")

	// qty 60 rounds to 100, crossing into the 0.15 break: 100*0.15 + 5.00
	got, err := svc.Supplier.OrderPrice(ctx, sp.ID, 60)
	if err != nil {
		t.Fatalf("OrderPrice: %v", err)
	}
	if want := decimal.RequireFromString("20.00"); !got.Equal(want) {
		t.Errorf("OrderPrice(60) = %s, want %s", got, want)
	}
}

func TestCreateSupplierPartValidation(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()

	company, err := svc.Supplier.CreateCompany(ctx, &service.CreateCompanyRequest{Name: "Acme Components"})
	if err != nil {
		t.Fatalf("create company: %v", err)
	}

	if _, err := svc.Supplier.CreateSupplierPart(ctx, &service.CreateSupplierPartRequest{
		PartID:     "missing",
		SupplierID: company.ID,
		SKU:        "X",
	}); err == nil {
		t.Error("expected error for unknown part")
	}

	notForSale := false
	part, err := svc.Part.Create(ctx, &service.CreatePartRequest{Name: "Internal Jig", Purchaseable: &notForSale})
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := svc.Supplier.CreateSupplierPart(ctx, &service.CreateSupplierPartRequest{
		PartID:     part.ID,
		SupplierID: company.ID,
		SKU:        "X",
	}); err == nil {
		t.Error("expected error for non-purchaseable part")
	}
}

func TestPriceBreakValidation(t *testing.T) {
	svc := newTestServices()
	sp := supplierFixture(t, svc)

	if _, err := svc.Supplier.CreatePriceBreak(context.Background(), sp.ID, &service.CreatePriceBreakRequest{
		Quantity: 0,
		Cost:     decimal.RequireFromString("0.01"),
	}); !errors.Is(err, service.ErrInvalidQuantity) {
		t.Errorf("err = %v, want ErrInvalidQuantity", err)
	}
}
