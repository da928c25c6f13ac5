package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/bitfantasy/parttrack/internal/service"
)

func TestBomTableStringifiesRows(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()

	widget, err := svc.Part.Create(ctx, &service.CreatePartRequest{Name: "Widget", Buildable: true})
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	screw, err := svc.Part.Create(ctx, &service.CreatePartRequest{Name: "M3 Screw", Description: "M3x8 pan head"})
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	bracket := mustComponent(t, svc, "Bracket")

	if _, err := svc.BOM.AddItem(ctx, widget.ID, &service.AddBomItemRequest{
		SubPartID: screw.ID,
		Quantity:  4,
		Note:      "torque to 0.5Nm",
	}); err != nil {
		t.Fatalf("add item: %v", err)
	}
	mustAddItem(t, svc, widget.ID, bracket, 1)

	table, err := svc.Export.Table(ctx, widget)
	if err != nil {
		t.Fatalf("Table: %v", err)
	}

	wantHeader := []string{"Part", "Description", "Quantity", "Note"}
	if len(table.Header) != len(wantHeader) {
		t.Fatalf("header len = %d, want %d", len(table.Header), len(wantHeader))
	}
	for i, h := range wantHeader {
		if table.Header[i] != h {
			t.Errorf("header[%d] = %q, want %q", i, table.Header[i], h)
		}
	}

	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	first := table.Rows[0]
	if first[0] != "M3 Screw" || first[1] != "M3x8 pan head" || first[2] != "4" || first[3] != "torque to 0.5Nm" {
		t.Errorf("row[0] = %v", first)
	}
	second := table.Rows[1]
	if second[0] != "Bracket" || second[2] != "1" {
		t.Errorf("row[1] = %v", second)
	}
}

func TestBomTableEmptyBom(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()

	part, err := svc.Part.Create(ctx, &service.CreatePartRequest{Name: "Lone Part"})
	if err != nil {
		t.Fatalf("create part: %v", err)
	}

	table, err := svc.Export.Table(ctx, part)
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(table.Rows))
	}
	if len(table.Header) != 4 {
		t.Errorf("header len = %d, want 4", len(table.Header))
	}
}

func TestBomCSVLayout(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()

	widget, err := svc.Part.Create(ctx, &service.CreatePartRequest{Name: "Widget", Buildable: true})
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	screw := mustComponent(t, svc, "Screw")
	mustAddItem(t, svc, widget.ID, screw, 4)

	out, err := svc.Export.CSV(ctx, widget)
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2:\n%s", len(lines), out)
	}
	if lines[0] != "Part,Description,Quantity,Note" {
		t.Errorf("header line = %q", lines[0])
	}
	if lines[1] != "Screw,,4," {
		t.Errorf("row line = %q", lines[1])
	}
}

func TestBomXLSXFilename(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()

	widget, err := svc.Part.Create(ctx, &service.CreatePartRequest{Name: "Widget", Buildable: true})
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	screw := mustComponent(t, svc, "Screw")
	mustAddItem(t, svc, widget.ID, screw, 2)

	f, filename, err := svc.Export.XLSX(ctx, widget)
	if err != nil {
		t.Fatalf("XLSX: %v", err)
	}
	defer f.Close()

	if filename != "BOM_Widget.xlsx" {
		t.Errorf("filename = %q", filename)
	}
	if got, _ := f.GetCellValue("BOM", "A1"); got != "Part" {
		t.Errorf("A1 = %q, want Part", got)
	}
	if got, _ := f.GetCellValue("BOM", "C2"); got != "2" {
		t.Errorf("C2 = %q, want 2", got)
	}
}
