package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"bodyshop-work-order/models"
)

const workOrderSheet = "Work Order"

// XLSXRenderer exports the work order as a spreadsheet
type XLSXRenderer struct {
	shopName string
	now      func() time.Time
}

// Ensure XLSXRenderer implements Renderer
var _ Renderer = (*XLSXRenderer)(nil)

// NewXLSXRenderer creates a new XLSXRenderer
func NewXLSXRenderer(shopName string) *XLSXRenderer {
	return &XLSXRenderer{shopName: shopName, now: time.Now}
}

func (r *XLSXRenderer) Format() string { return "xlsx" }
func (r *XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render writes a header block followed by one row per non-blank job line
func (r *XLSXRenderer) Render(ctx context.Context, snap models.FormSnapshot) ([]byte, error) {
	view := BuildPrintView(r.shopName, snap, r.now())

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", workOrderSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#111827"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	header := [][2]string{
		{"Shop", view.ShopName},
		{"Work Order", view.OrderNumber},
		{"Customer", view.CustomerName},
		{"Phone", view.CustomerPhone},
		{"Start", view.StartDate},
		{"End", view.EndDate},
		{"Duration", view.Duration},
		{"Vehicle", view.VehicleLine},
		{"VIN", view.VIN},
		{"Plate", view.Plate},
	}
	row := 1
	for _, kv := range header {
		if err := setRow(f, row, kv[0], kv[1]); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(workOrderSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), boldStyle); err != nil {
			return nil, fmt.Errorf("failed to style row %d: %w", row, err)
		}
		row++
	}

	row++
	if err := setRow(f, row, "Operation", "Description", "Part #"); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(workOrderSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("C%d", row), headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style item header: %w", err)
	}
	row++
	for _, item := range view.ListedItems {
		if err := setRow(f, row, item.Title, item.Description, item.PartNumber); err != nil {
			return nil, err
		}
		row++
	}

	if view.ShowNotes {
		row++
		if err := setRow(f, row, "Notes", strings.TrimSpace(view.Notes)); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(workOrderSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), boldStyle); err != nil {
			return nil, fmt.Errorf("failed to style notes: %w", err)
		}
	}

	if err := f.SetColWidth(workOrderSheet, "A", "A", 16); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(workOrderSheet, "B", "B", 48); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(workOrderSheet, "C", "C", 20); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, values ...string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to resolve cell: %w", err)
		}
		if err := f.SetCellValue(workOrderSheet, cell, v); err != nil {
			return fmt.Errorf("failed to set %s: %w", cell, err)
		}
	}
	return nil
}
