package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bitfantasy/parttrack/internal/model/entity"
	"github.com/xuri/excelize/v2"
)

var bomExportHeader = []string{"Part", "Description", "Quantity", "Note"}

// ExportService renders a part's BOM for download.
type ExportService struct {
	bom BomStore
}

func NewExportService(bom BomStore) *ExportService {
	return &ExportService{bom: bom}
}

// BOMTable is a fully stringified BOM rendering. Every cell is text so the
// table can feed any tabular sink unchanged.
type BOMTable struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Table returns the header row plus one row per BOM item of the part,
// in the items' stored order. A part without a BOM yields zero rows.
func (s *ExportService) Table(ctx context.Context, part *entity.Part) (*BOMTable, error) {
	items, err := s.bom.ItemsFor(ctx, part.ID)
	if err != nil {
		return nil, fmt.Errorf("bom items: %w", err)
	}

	table := &BOMTable{
		Header: bomExportHeader,
		Rows:   make([][]string, 0, len(items)),
	}
	for i := range items {
		item := &items[i]
		name, description := item.SubPartID, ""
		if item.SubPart != nil {
			name = item.SubPart.Name
			description = item.SubPart.Description
		}
		table.Rows = append(table.Rows, []string{
			name,
			description,
			strconv.Itoa(item.Quantity),
			item.Note,
		})
	}
	return table, nil
}

// CSV renders the BOM table as comma-separated lines.
func (s *ExportService) CSV(ctx context.Context, part *entity.Part) (string, error) {
	table, err := s.Table(ctx, part)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(strings.Join(table.Header, ","))
	b.WriteByte('\n')
	for _, row := range table.Rows {
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// XLSX renders the BOM table as a spreadsheet with a bold header row.
func (s *ExportService) XLSX(ctx context.Context, part *entity.Part) (*excelize.File, string, error) {
	table, err := s.Table(ctx, part)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "BOM"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	for i, h := range table.Header {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, row := range table.Rows {
		for colIdx, value := range row {
			col, _ := excelize.ColumnNumberToName(colIdx + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, rowIdx+2), value)
		}
	}

	colWidths := []float64{24, 36, 10, 24}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("BOM_%s.xlsx", part.Name)
	return f, filename, nil
}
